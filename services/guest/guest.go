package guest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"flight-booking/constants"
	bookingModel "flight-booking/models/booking"
	userModel "flight-booking/models/user"
	"flight-booking/storage"

	"github.com/google/uuid"
)

var (
	// ErrIdentityResolution means the guest owner could not be found or
	// created. Callers must not persist a booking without an owner id.
	ErrIdentityResolution = errors.New("guest: could not resolve guest owner")

	// ErrVerificationFailed means the (locator, contact, owner) triple did not
	// match any record. It deliberately carries no detail about which
	// predicate failed, so locators and contact addresses cannot be
	// enumerated against each other.
	ErrVerificationFailed = errors.New("guest: booking not found or access denied")
)

// Service resolves the guest sentinel account and gates anonymous access to
// bookings.
type Service struct {
	store         storage.Store
	sentinelEmail string
}

// NewService creates a guest service. The sentinel address comes from
// GUEST_OWNER_EMAIL, falling back to the built-in reserved address.
func NewService(store storage.Store) *Service {
	email := os.Getenv("GUEST_OWNER_EMAIL")
	if email == "" {
		email = constants.DefaultGuestOwnerEmail
	}
	return &Service{store: store, sentinelEmail: NormalizeEmail(email)}
}

// SentinelEmail returns the reserved contact address of the guest owner.
func (s *Service) SentinelEmail() string {
	return s.sentinelEmail
}

// NormalizeEmail canonicalizes a contact address for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Resolve returns the id of the guest sentinel account, creating it on first
// use. The read-then-create race is settled by the unique constraint on the
// email column: a concurrent creation surfaces as ErrDuplicate and we re-read
// instead of failing.
func (s *Service) Resolve(ctx context.Context) (uint, error) {
	existing, err := s.store.UserByEmail(ctx, s.sentinelEmail)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("%w: %v", ErrIdentityResolution, err)
	}

	owner := &userModel.User{
		Uuid:     uuid.NewString(),
		Email:    s.sentinelEmail,
		FullName: "Guest",
		Role:     constants.RoleGuest,
	}

	err = s.store.CreateUser(ctx, owner)
	if err == nil {
		return owner.ID, nil
	}
	if !errors.Is(err, storage.ErrDuplicate) {
		return 0, fmt.Errorf("%w: %v", ErrIdentityResolution, err)
	}

	// Lost the creation race; the winner's record must exist now.
	existing, err = s.store.UserByEmail(ctx, s.sentinelEmail)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIdentityResolution, err)
	}
	return existing.ID, nil
}

// VerifyAccess gates guest access to a booking: the supplied locator and
// contact address must both match the stored record exactly, and the record
// must belong to the guest owner. Matching the locator alone is never
// sufficient; locators are not unique across the whole booking population and
// the contact address is the actual authorization secret.
func (s *Service) VerifyAccess(ctx context.Context, locatorCode, contactEmail string) (*bookingModel.Booking, error) {
	ownerID, err := s.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	locatorCode = strings.ToUpper(strings.TrimSpace(locatorCode))
	contactEmail = NormalizeEmail(contactEmail)

	b, err := s.store.GuestBooking(ctx, locatorCode, contactEmail, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrVerificationFailed
		}
		return nil, fmt.Errorf("guest: verification lookup: %w", err)
	}
	return b, nil
}
