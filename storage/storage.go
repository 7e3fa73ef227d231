package storage

import (
	"context"
	"errors"

	bookingModel "flight-booking/models/booking"
	logModel "flight-booking/models/log"
	userModel "flight-booking/models/user"
)

var (
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("storage: record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("storage: duplicate record")
	// ErrConflict is returned when a conditional update matched no row,
	// e.g. a status transition from a state the booking is no longer in.
	ErrConflict = errors.New("storage: conflicting state")
)

// Store is the persistence boundary. Two implementations exist: the Postgres
// backend and the in-memory fallback. The backend is chosen once at startup;
// nothing above this interface branches on the driver.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *userModel.User) error
	UserByEmail(ctx context.Context, email string) (*userModel.User, error)
	UserByUUID(ctx context.Context, uuid string) (*userModel.User, error)

	// Bookings
	CreateBooking(ctx context.Context, b *bookingModel.Booking) error
	BookingByID(ctx context.Context, id uint) (*bookingModel.Booking, error)
	BookingByLocator(ctx context.Context, locator string) (*bookingModel.Booking, error)
	// GuestBooking fetches the booking matching locator, contact address and
	// owner id exactly. All three predicates must hold; a miss on any of them
	// is ErrNotFound with no further detail.
	GuestBooking(ctx context.Context, locator, contactEmail string, ownerID uint) (*bookingModel.Booking, error)
	BookingsByUser(ctx context.Context, userID uint) ([]bookingModel.Booking, error)
	BookingByPaymentIntent(ctx context.Context, intentID string) (*bookingModel.Booking, error)

	// TransitionBookingStatus conditionally moves a booking from one status to
	// another; ErrConflict if the booking is not in the expected status.
	TransitionBookingStatus(ctx context.Context, id uint, from, to bookingModel.BookingStatus) error
	AttachPaymentIntent(ctx context.Context, id uint, intentID, secretEnc string) error

	// Request logs
	SaveRequestLog(ctx context.Context, entry *logModel.Log) error
}
