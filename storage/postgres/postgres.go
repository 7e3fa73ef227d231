package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingModel "flight-booking/models/booking"
	logModel "flight-booking/models/log"
	userModel "flight-booking/models/user"
	"flight-booking/storage"

	"gorm.io/gorm"
)

// Store is the Postgres-backed storage implementation. The database must be
// opened with TranslateError enabled so unique-constraint violations surface
// as gorm.ErrDuplicatedKey.
type Store struct {
	db *gorm.DB
}

// New creates a Postgres store on an initialized GORM handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storage.ErrDuplicate
	default:
		return fmt.Errorf("storage: %w", err)
	}
}

func (s *Store) CreateUser(ctx context.Context, u *userModel.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*userModel.User, error) {
	var u userModel.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) UserByUUID(ctx context.Context, uuid string) (*userModel.User, error) {
	var u userModel.User
	if err := s.db.WithContext(ctx).Where("uuid = ?", uuid).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) CreateBooking(ctx context.Context, b *bookingModel.Booking) error {
	return translate(s.db.WithContext(ctx).Create(b).Error)
}

func (s *Store) BookingByID(ctx context.Context, id uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *Store) BookingByLocator(ctx context.Context, locator string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.db.WithContext(ctx).Where("locator_code = ?", locator).First(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *Store) GuestBooking(ctx context.Context, locator, contactEmail string, ownerID uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := s.db.WithContext(ctx).
		Where("locator_code = ? AND contact_email = ? AND user_id = ?", locator, contactEmail, ownerID).
		First(&b).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *Store) BookingsByUser(ctx context.Context, userID uint) ([]bookingModel.Booking, error) {
	var bookings []bookingModel.Booking
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err)
	}
	return bookings, nil
}

func (s *Store) BookingByPaymentIntent(ctx context.Context, intentID string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.db.WithContext(ctx).Where("payment_intent_id = ?", intentID).First(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *Store) TransitionBookingStatus(ctx context.Context, id uint, from, to bookingModel.BookingStatus) error {
	updates := map[string]interface{}{"status": to}
	if to == bookingModel.BookingStatusCancelled {
		now := time.Now()
		updates["cancelled_at"] = &now
	}

	res := s.db.WithContext(ctx).
		Model(&bookingModel.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrConflict
	}
	return nil
}

func (s *Store) AttachPaymentIntent(ctx context.Context, id uint, intentID, secretEnc string) error {
	res := s.db.WithContext(ctx).
		Model(&bookingModel.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_intent_id":  intentID,
			"payment_secret_enc": secretEnc,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) SaveRequestLog(ctx context.Context, entry *logModel.Log) error {
	return translate(s.db.WithContext(ctx).Create(entry).Error)
}
