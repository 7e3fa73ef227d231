package locator

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	bookingModel "flight-booking/models/booking"
	"flight-booking/storage"
)

// Alphabet is the PNR character set: 36 symbols, 36^6 possible codes.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the fixed locator length.
const Length = 6

// maxAttempts bounds the regenerate-on-collision loop in CreateWithLocator.
const maxAttempts = 5

// ErrExhausted is returned when every generated locator collided with an
// existing booking. With 36^6 codes this only happens under pathological
// store contents.
var ErrExhausted = errors.New("locator: could not allocate a unique locator")

// Generate produces a 6-character booking locator, each character chosen
// independently and uniformly from the alphabet. Codes are not unique by
// construction; the bookings table's unique constraint is the arbiter.
func Generate() (string, error) {
	code := make([]byte, Length)
	size := big.NewInt(int64(len(Alphabet)))

	for i := range code {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("locator: %w", err)
		}
		code[i] = Alphabet[n.Int64()]
	}

	return string(code), nil
}

// CreateWithLocator persists a booking under a freshly generated locator,
// regenerating on a duplicate-key error up to maxAttempts times. On success
// the booking's LocatorCode holds the allocated code.
func CreateWithLocator(ctx context.Context, store storage.Store, b *bookingModel.Booking) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := Generate()
		if err != nil {
			return err
		}

		b.LocatorCode = code
		err = store.CreateBooking(ctx, b)
		if err == nil {
			return nil
		}
		if errors.Is(err, storage.ErrDuplicate) {
			continue
		}
		return err
	}
	return ErrExhausted
}
