package locator

import (
	"context"
	"errors"
	"strings"
	"testing"

	bookingModel "flight-booking/models/booking"
	"flight-booking/storage"
	"flight-booking/storage/memory"
)

func TestGenerateShape(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if len(code) != Length {
			t.Fatalf("Generate() = %q, want %d characters", code, Length)
		}
		for _, ch := range code {
			if !strings.ContainsRune(Alphabet, ch) {
				t.Fatalf("Generate() = %q contains %q outside the alphabet", code, ch)
			}
		}
	}
}

func TestGenerateVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		seen[code] = true
	}
	// 200 draws from 36^6 codes colliding down to a handful would mean the
	// generator is broken, not unlucky.
	if len(seen) < 190 {
		t.Fatalf("got only %d distinct codes out of 200", len(seen))
	}
}

func newBooking() *bookingModel.Booking {
	return &bookingModel.Booking{
		UserID:       1,
		ContactEmail: "traveller@example.com",
		FlightNumber: "AA101",
		Origin:       "JFK",
		Destination:  "LHR",
		Status:       bookingModel.BookingStatusPending,
		AmountCents:  48900,
		Currency:     "USD",
	}
}

func TestCreateWithLocatorAssignsCode(t *testing.T) {
	store := memory.New()

	b := newBooking()
	if err := CreateWithLocator(context.Background(), store, b); err != nil {
		t.Fatalf("CreateWithLocator() error: %v", err)
	}
	if len(b.LocatorCode) != Length {
		t.Fatalf("LocatorCode = %q, want %d characters", b.LocatorCode, Length)
	}

	stored, err := store.BookingByLocator(context.Background(), b.LocatorCode)
	if err != nil {
		t.Fatalf("BookingByLocator() error: %v", err)
	}
	if stored.ID != b.ID {
		t.Fatalf("stored booking id = %d, want %d", stored.ID, b.ID)
	}
}

// collidingStore forces the first N creations to collide, as if every
// generated locator were already taken.
type collidingStore struct {
	*memory.Store
	collisions int
}

func (s *collidingStore) CreateBooking(ctx context.Context, b *bookingModel.Booking) error {
	if s.collisions > 0 {
		s.collisions--
		return storage.ErrDuplicate
	}
	return s.Store.CreateBooking(ctx, b)
}

func TestCreateWithLocatorRetriesOnCollision(t *testing.T) {
	store := &collidingStore{Store: memory.New(), collisions: 3}

	b := newBooking()
	if err := CreateWithLocator(context.Background(), store, b); err != nil {
		t.Fatalf("CreateWithLocator() error after collisions: %v", err)
	}
	if len(b.LocatorCode) != Length {
		t.Fatalf("LocatorCode = %q, want %d characters", b.LocatorCode, Length)
	}
}

func TestCreateWithLocatorExhausts(t *testing.T) {
	store := &collidingStore{Store: memory.New(), collisions: maxAttempts}

	err := CreateWithLocator(context.Background(), store, newBooking())
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("CreateWithLocator() error = %v, want ErrExhausted", err)
	}
}

func TestCreateWithLocatorPropagatesOtherErrors(t *testing.T) {
	store := &failingStore{Store: memory.New()}

	err := CreateWithLocator(context.Background(), store, newBooking())
	if !errors.Is(err, errBackend) {
		t.Fatalf("CreateWithLocator() error = %v, want backend error", err)
	}
}

var errBackend = errors.New("backend down")

type failingStore struct {
	*memory.Store
}

func (s *failingStore) CreateBooking(context.Context, *bookingModel.Booking) error {
	return errBackend
}
