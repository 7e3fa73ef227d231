package memory

import (
	"context"
	"errors"
	"testing"

	bookingModel "flight-booking/models/booking"
	logModel "flight-booking/models/log"
	userModel "flight-booking/models/user"
	"flight-booking/storage"
)

func testUser(email, uid string) *userModel.User {
	return &userModel.User{
		Uuid:     uid,
		Email:    email,
		FullName: "Traveller",
		Role:     "customer",
	}
}

func testBooking(locator string, userID uint) *bookingModel.Booking {
	return &bookingModel.Booking{
		LocatorCode:  locator,
		UserID:       userID,
		ContactEmail: "traveller@example.com",
		FlightNumber: "AA101",
		Origin:       "JFK",
		Destination:  "LHR",
		Status:       bookingModel.BookingStatusPending,
		AmountCents:  48900,
		Currency:     "USD",
	}
}

func TestUserEmailUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateUser(ctx, testUser("a@example.com", "uuid-1")); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	err := s.CreateUser(ctx, testUser("a@example.com", "uuid-2"))
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("duplicate email error = %v, want ErrDuplicate", err)
	}
	err = s.CreateUser(ctx, testUser("b@example.com", "uuid-1"))
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("duplicate uuid error = %v, want ErrDuplicate", err)
	}
}

func TestLocatorUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateBooking(ctx, testBooking("AB12CD", 1)); err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}
	err := s.CreateBooking(ctx, testBooking("AB12CD", 2))
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("duplicate locator error = %v, want ErrDuplicate", err)
	}
}

func TestGuestBookingRequiresAllPredicates(t *testing.T) {
	s := New()
	ctx := context.Background()

	b := testBooking("AB12CD", 7)
	if err := s.CreateBooking(ctx, b); err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}

	if _, err := s.GuestBooking(ctx, "AB12CD", "traveller@example.com", 7); err != nil {
		t.Fatalf("GuestBooking() full match error: %v", err)
	}

	cases := []struct {
		name    string
		locator string
		email   string
		owner   uint
	}{
		{"wrong locator", "ZZ99ZZ", "traveller@example.com", 7},
		{"wrong email", "AB12CD", "other@example.com", 7},
		{"wrong owner", "AB12CD", "traveller@example.com", 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.GuestBooking(ctx, tc.locator, tc.email, tc.owner)
			if !errors.Is(err, storage.ErrNotFound) {
				t.Fatalf("error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestTransitionBookingStatus(t *testing.T) {
	s := New()
	ctx := context.Background()

	b := testBooking("AB12CD", 1)
	if err := s.CreateBooking(ctx, b); err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}

	err := s.TransitionBookingStatus(ctx, b.ID, bookingModel.BookingStatusPending, bookingModel.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("TransitionBookingStatus() error: %v", err)
	}

	// CAS from the wrong state must not apply.
	err = s.TransitionBookingStatus(ctx, b.ID, bookingModel.BookingStatusPending, bookingModel.BookingStatusCancelled)
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("stale transition error = %v, want ErrConflict", err)
	}

	got, err := s.BookingByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("BookingByID() error: %v", err)
	}
	if got.Status != bookingModel.BookingStatusConfirmed {
		t.Fatalf("status = %q, want confirmed", got.Status)
	}

	err = s.TransitionBookingStatus(ctx, b.ID, bookingModel.BookingStatusConfirmed, bookingModel.BookingStatusCancelled)
	if err != nil {
		t.Fatalf("cancel transition error: %v", err)
	}
	got, _ = s.BookingByID(ctx, b.ID)
	if got.CancelledAt == nil {
		t.Fatal("CancelledAt not set on cancellation")
	}
}

func TestAttachPaymentIntent(t *testing.T) {
	s := New()
	ctx := context.Background()

	b := testBooking("AB12CD", 1)
	if err := s.CreateBooking(ctx, b); err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}

	if err := s.AttachPaymentIntent(ctx, b.ID, "pi_123", "enc-secret"); err != nil {
		t.Fatalf("AttachPaymentIntent() error: %v", err)
	}

	got, err := s.BookingByPaymentIntent(ctx, "pi_123")
	if err != nil {
		t.Fatalf("BookingByPaymentIntent() error: %v", err)
	}
	if got.ID != b.ID {
		t.Fatalf("booking id = %d, want %d", got.ID, b.ID)
	}
	if got.PaymentSecretEnc == nil || *got.PaymentSecretEnc != "enc-secret" {
		t.Fatal("encrypted secret not stored")
	}

	if _, err := s.BookingByPaymentIntent(ctx, "pi_unknown"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown intent error = %v, want ErrNotFound", err)
	}
}

func TestBookingsByUser(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i, locator := range []string{"AAAAA1", "AAAAA2", "BBBBB1"} {
		owner := uint(1)
		if i == 2 {
			owner = 2
		}
		if err := s.CreateBooking(ctx, testBooking(locator, owner)); err != nil {
			t.Fatalf("CreateBooking() error: %v", err)
		}
	}

	mine, err := s.BookingsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("BookingsByUser() error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("got %d bookings, want 2", len(mine))
	}
}

func TestSaveRequestLog(t *testing.T) {
	s := New()

	entry := &logModel.Log{Method: "GET", URL: "/api/flights/search", StatusCode: 200}
	if err := s.SaveRequestLog(context.Background(), entry); err != nil {
		t.Fatalf("SaveRequestLog() error: %v", err)
	}
	if s.RequestLogCount() != 1 {
		t.Fatalf("RequestLogCount() = %d, want 1", s.RequestLogCount())
	}
}
