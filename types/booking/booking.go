package booking

import (
	"fmt"
	"strings"
	"time"
)

// PassengerInput is one traveller in a booking request.
type PassengerInput struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=255"`
	LastName  string `json:"last_name" validate:"required,min=1,max=255"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Document  string `json:"document" validate:"omitempty,max=50"`
}

// TripInput is the flight selection carried on a booking request. The
// frontend copies these fields from a search offer.
type TripInput struct {
	FlightNumber string    `json:"flight_number" validate:"required,min=3,max=10"`
	Origin       string    `json:"origin" validate:"required,len=3"`
	Destination  string    `json:"destination" validate:"required,len=3"`
	DepartureAt  time.Time `json:"departure_at" validate:"required"`
	ArrivalAt    time.Time `json:"arrival_at" validate:"required"`

	ReturnFlightNumber string     `json:"return_flight_number,omitempty"`
	ReturnDepartureAt  *time.Time `json:"return_departure_at,omitempty"`
	ReturnArrivalAt    *time.Time `json:"return_arrival_at,omitempty"`

	CabinClass  string `json:"cabin_class" validate:"required,oneof=economy business first"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required,len=3"`
}

// GuestBookingCreateRequest creates a booking without an account. The contact
// email is the address later required for lookup and payment verification.
type GuestBookingCreateRequest struct {
	ContactEmail string           `json:"contact_email" validate:"required,email"`
	Trip         TripInput        `json:"trip" validate:"required"`
	Passengers   []PassengerInput `json:"passengers" validate:"required,min=1,max=9,dive"`
}

// BookingCreateRequest creates a booking for an authenticated user.
type BookingCreateRequest struct {
	Trip       TripInput        `json:"trip" validate:"required"`
	Passengers []PassengerInput `json:"passengers" validate:"required,min=1,max=9,dive"`
}

// GuestAccessRequest carries the (locator, contact) pair that gates every
// guest operation. Both must match the stored record exactly.
type GuestAccessRequest struct {
	Locator      string `json:"locator" validate:"required,len=6"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
}

func (t TripInput) Validate() error {
	if strings.TrimSpace(t.FlightNumber) == "" {
		return fmt.Errorf("flight number is required")
	}
	if len(t.Origin) != 3 {
		return fmt.Errorf("origin must be a 3-letter airport code")
	}
	if len(t.Destination) != 3 {
		return fmt.Errorf("destination must be a 3-letter airport code")
	}
	if strings.EqualFold(t.Origin, t.Destination) {
		return fmt.Errorf("origin and destination must differ")
	}
	if t.DepartureAt.IsZero() || t.ArrivalAt.IsZero() {
		return fmt.Errorf("departure and arrival times are required")
	}
	if !t.ArrivalAt.After(t.DepartureAt) {
		return fmt.Errorf("arrival must be after departure")
	}
	switch t.CabinClass {
	case "economy", "business", "first":
	default:
		return fmt.Errorf("cabin class must be one of economy, business, first")
	}
	if t.AmountCents <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if len(t.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter code")
	}
	if t.ReturnFlightNumber != "" {
		if t.ReturnDepartureAt == nil || t.ReturnArrivalAt == nil {
			return fmt.Errorf("return departure and arrival times are required for a return leg")
		}
		if !t.ReturnDepartureAt.After(t.ArrivalAt) {
			return fmt.Errorf("return departure must be after outbound arrival")
		}
	}
	return nil
}

func validatePassengers(passengers []PassengerInput) error {
	if len(passengers) == 0 {
		return fmt.Errorf("at least one passenger is required")
	}
	if len(passengers) > 9 {
		return fmt.Errorf("at most 9 passengers per booking")
	}
	for i, p := range passengers {
		if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
			return fmt.Errorf("passenger %d: first and last name are required", i+1)
		}
	}
	return nil
}

func (r GuestBookingCreateRequest) Validate() error {
	if strings.TrimSpace(r.ContactEmail) == "" {
		return fmt.Errorf("contact email is required")
	}
	if !strings.Contains(r.ContactEmail, "@") {
		return fmt.Errorf("contact email is not valid")
	}
	if err := r.Trip.Validate(); err != nil {
		return err
	}
	return validatePassengers(r.Passengers)
}

func (r BookingCreateRequest) Validate() error {
	if err := r.Trip.Validate(); err != nil {
		return err
	}
	return validatePassengers(r.Passengers)
}

func (r GuestAccessRequest) Validate() error {
	if len(strings.TrimSpace(r.Locator)) != 6 {
		return fmt.Errorf("locator must be 6 characters")
	}
	if strings.TrimSpace(r.ContactEmail) == "" {
		return fmt.Errorf("contact email is required")
	}
	return nil
}
