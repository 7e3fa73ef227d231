package booking

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	// BookingStatusPending is the initial state; payment has not completed.
	BookingStatusPending BookingStatus = "pending"
	// BookingStatusConfirmed means payment succeeded.
	BookingStatusConfirmed BookingStatus = "confirmed"
	// BookingStatusCancelled is terminal.
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once no further transition is allowed.
func (bs BookingStatus) IsTerminal() bool {
	return bs == BookingStatusCancelled
}

// CanInitiatePayment returns true if a payment intent may be created.
// Paying a non-pending booking is rejected by the payment flow.
func (bs BookingStatus) CanInitiatePayment() bool {
	return bs == BookingStatusPending
}

// CanBeCancelled returns true if the booking may still be cancelled.
func (bs BookingStatus) CanBeCancelled() bool {
	return bs == BookingStatusPending || bs == BookingStatusConfirmed
}

// GetAllBookingStatuses returns all valid booking statuses
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusCancelled,
	}
}
