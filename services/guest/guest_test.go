package guest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"flight-booking/constants"
	bookingModel "flight-booking/models/booking"
	userModel "flight-booking/models/user"
	"flight-booking/storage/memory"

	"github.com/google/uuid"
)

func TestResolveCreatesSentinelOnce(t *testing.T) {
	store := memory.New()
	svc := NewService(store)
	ctx := context.Background()

	first, err := svc.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	second, err := svc.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve() second call error: %v", err)
	}
	if first != second {
		t.Fatalf("Resolve() returned different ids: %d, %d", first, second)
	}

	owner, err := store.UserByEmail(ctx, svc.SentinelEmail())
	if err != nil {
		t.Fatalf("UserByEmail() error: %v", err)
	}
	if owner.Role != constants.RoleGuest {
		t.Fatalf("sentinel role = %q, want %q", owner.Role, constants.RoleGuest)
	}
	if owner.CanAuthenticate() {
		t.Fatal("sentinel account must never be able to authenticate")
	}
}

func TestResolveConcurrentConvergence(t *testing.T) {
	store := memory.New()
	svc := NewService(store)

	const workers = 16
	ids := make([]uint, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			id, err := svc.Resolve(context.Background())
			if err != nil {
				t.Errorf("Resolve() error: %v", err)
				return
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("concurrent Resolve() diverged: ids[0]=%d, ids[%d]=%d", ids[0], i, ids[i])
		}
	}
}

func TestSentinelEmailOverride(t *testing.T) {
	t.Setenv("GUEST_OWNER_EMAIL", "Anon@Example.COM ")
	svc := NewService(memory.New())
	if svc.SentinelEmail() != "anon@example.com" {
		t.Fatalf("SentinelEmail() = %q, want normalized override", svc.SentinelEmail())
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Traveller@Example.COM "); got != "traveller@example.com" {
		t.Fatalf("NormalizeEmail() = %q", got)
	}
}

func seedGuestBooking(t *testing.T, svc *Service, store *memory.Store, locatorCode, contact string) *bookingModel.Booking {
	t.Helper()
	ownerID, err := svc.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	b := &bookingModel.Booking{
		LocatorCode:  locatorCode,
		UserID:       ownerID,
		ContactEmail: NormalizeEmail(contact),
		FlightNumber: "AA101",
		Origin:       "JFK",
		Destination:  "LHR",
		Status:       bookingModel.BookingStatusPending,
		AmountCents:  48900,
		Currency:     "USD",
	}
	if err := store.CreateBooking(context.Background(), b); err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}
	return b
}

func TestVerifyAccess(t *testing.T) {
	store := memory.New()
	svc := NewService(store)
	ctx := context.Background()

	seeded := seedGuestBooking(t, svc, store, "AB12CD", "traveller@example.com")

	t.Run("matching pair", func(t *testing.T) {
		got, err := svc.VerifyAccess(ctx, "AB12CD", "traveller@example.com")
		if err != nil {
			t.Fatalf("VerifyAccess() error: %v", err)
		}
		if got.ID != seeded.ID {
			t.Fatalf("VerifyAccess() returned booking %d, want %d", got.ID, seeded.ID)
		}
	})

	t.Run("inputs are canonicalized", func(t *testing.T) {
		if _, err := svc.VerifyAccess(ctx, " ab12cd ", " Traveller@Example.COM"); err != nil {
			t.Fatalf("VerifyAccess() with unnormalized inputs error: %v", err)
		}
	})

	t.Run("wrong locator", func(t *testing.T) {
		_, err := svc.VerifyAccess(ctx, "ZZ99ZZ", "traveller@example.com")
		if !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("error = %v, want ErrVerificationFailed", err)
		}
	})

	t.Run("wrong contact", func(t *testing.T) {
		_, err := svc.VerifyAccess(ctx, "AB12CD", "stranger@example.com")
		if !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("error = %v, want ErrVerificationFailed", err)
		}
	})
}

// A booking owned by a real account must never be reachable through the guest
// gate, even with a matching locator and contact address.
func TestVerifyAccessRejectsNonGuestBooking(t *testing.T) {
	store := memory.New()
	svc := NewService(store)
	ctx := context.Background()

	owner := &userModel.User{
		Uuid:     uuid.NewString(),
		Email:    "member@example.com",
		FullName: "Member",
		Role:     constants.RoleCustomer,
	}
	if err := store.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	b := &bookingModel.Booking{
		LocatorCode:  "QQ77QQ",
		UserID:       owner.ID,
		ContactEmail: "member@example.com",
		FlightNumber: "AA101",
		Origin:       "JFK",
		Destination:  "LHR",
		Status:       bookingModel.BookingStatusPending,
		AmountCents:  48900,
		Currency:     "USD",
	}
	if err := store.CreateBooking(ctx, b); err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}

	_, err := svc.VerifyAccess(ctx, "QQ77QQ", "member@example.com")
	if !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("error = %v, want ErrVerificationFailed for non-guest booking", err)
	}
}
