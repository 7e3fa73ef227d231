package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingModel "flight-booking/models/booking"
	logModel "flight-booking/models/log"
	userModel "flight-booking/models/user"
	"flight-booking/storage"
)

// Store is the in-memory fallback backend. It enforces the same unique
// constraints as the Postgres schema (users.email, bookings.locator_code) so
// the insert-on-conflict semantics of the guest resolver and the locator
// retry loop behave identically on both drivers.
type Store struct {
	mu sync.Mutex

	users    map[uint]userModel.User
	bookings map[uint]bookingModel.Booking
	logs     []logModel.Log

	nextUserID    uint
	nextBookingID uint
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:         make(map[uint]userModel.User),
		bookings:      make(map[uint]bookingModel.Booking),
		nextUserID:    1,
		nextBookingID: 1,
	}
}

func (s *Store) CreateUser(_ context.Context, u *userModel.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email || existing.Uuid == u.Uuid {
			return storage.ErrDuplicate
		}
	}

	u.ID = s.nextUserID
	s.nextUserID++
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (*userModel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) UserByUUID(_ context.Context, uuid string) (*userModel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Uuid == uuid {
			out := u
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) CreateBooking(_ context.Context, b *bookingModel.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bookings {
		if existing.LocatorCode == b.LocatorCode {
			return storage.ErrDuplicate
		}
	}

	b.ID = s.nextBookingID
	s.nextBookingID++
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	s.bookings[b.ID] = *b
	return nil
}

func (s *Store) BookingByID(_ context.Context, id uint) (*bookingModel.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := b
	return &out, nil
}

func (s *Store) BookingByLocator(_ context.Context, locator string) (*bookingModel.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.LocatorCode == locator {
			out := b
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) GuestBooking(_ context.Context, locator, contactEmail string, ownerID uint) (*bookingModel.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.LocatorCode == locator && b.ContactEmail == contactEmail && b.UserID == ownerID {
			out := b
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) BookingsByUser(_ context.Context, userID uint) ([]bookingModel.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bookings []bookingModel.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (s *Store) BookingByPaymentIntent(_ context.Context, intentID string) (*bookingModel.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.PaymentIntentID != nil && *b.PaymentIntentID == intentID {
			out := b
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) TransitionBookingStatus(_ context.Context, id uint, from, to bookingModel.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return storage.ErrNotFound
	}
	if b.Status != from {
		return storage.ErrConflict
	}

	b.Status = to
	b.UpdatedAt = time.Now()
	if to == bookingModel.BookingStatusCancelled {
		now := time.Now()
		b.CancelledAt = &now
	}
	s.bookings[id] = b
	return nil
}

func (s *Store) AttachPaymentIntent(_ context.Context, id uint, intentID, secretEnc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return storage.ErrNotFound
	}

	b.PaymentIntentID = &intentID
	b.PaymentSecretEnc = &secretEnc
	b.UpdatedAt = time.Now()
	s.bookings[id] = b
	return nil
}

func (s *Store) SaveRequestLog(_ context.Context, entry *logModel.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uint(len(s.logs) + 1)
	entry.CreatedAt = time.Now()
	s.logs = append(s.logs, *entry)
	return nil
}

// RequestLogCount reports the number of stored request logs.
func (s *Store) RequestLogCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}
