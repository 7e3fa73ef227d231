package booking

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"flight-booking/models/user"
)

// Booking represents a flight booking. Guest bookings belong to the guest
// sentinel account and are addressed by (locator_code, contact_email); the
// contact address is the authorization secret for anonymous access, so it is
// always the caller-supplied value, never the sentinel address.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// LocatorCode is the 6-character PNR. Uniqueness is enforced here, not by
	// the generator; creation regenerates on a duplicate-key error.
	LocatorCode string `gorm:"type:varchar(6);not null;unique" json:"locator_code"`

	// Foreign key for users relationship
	UserID uint       `gorm:"not null;index" json:"user_id"`
	User   *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	ContactEmail string `gorm:"type:varchar(255);not null;index" json:"contact_email"`

	// Outbound leg
	FlightNumber string    `gorm:"type:varchar(10);not null" json:"flight_number"`
	Origin       string    `gorm:"type:varchar(3);not null" json:"origin"`
	Destination  string    `gorm:"type:varchar(3);not null" json:"destination"`
	DepartureAt  time.Time `gorm:"not null" json:"departure_at"`
	ArrivalAt    time.Time `gorm:"not null" json:"arrival_at"`

	// Optional return leg
	ReturnFlightNumber *string    `gorm:"type:varchar(10)" json:"return_flight_number,omitempty"`
	ReturnDepartureAt  *time.Time `json:"return_departure_at,omitempty"`
	ReturnArrivalAt    *time.Time `json:"return_arrival_at,omitempty"`

	CabinClass string        `gorm:"type:varchar(20);not null;default:'economy'" json:"cabin_class"`
	Passengers PassengerList `gorm:"type:json" json:"passengers"`

	AmountCents int64  `gorm:"not null" json:"amount_cents"`
	Currency    string `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`

	Status BookingStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	// PaymentIntentID is the gateway's intent identifier; the client secret is
	// stored AES-GCM encrypted.
	PaymentIntentID  *string `gorm:"type:varchar(255);index" json:"payment_intent_id,omitempty"`
	PaymentSecretEnc *string `gorm:"type:text" json:"-"`

	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// TableName returns the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// Passenger is one traveller on a booking.
type Passenger struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date,omitempty"`
	Document  string `json:"document,omitempty"`
}

// PassengerList is stored as a JSON column.
type PassengerList []Passenger

// Scan implements the Scanner interface for database deserialization
func (pl *PassengerList) Scan(value interface{}) error {
	if value == nil {
		*pl = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, pl)
}

// Value implements the driver Valuer interface for database serialization
func (pl PassengerList) Value() (driver.Value, error) {
	if pl == nil {
		return nil, nil
	}
	return json.Marshal(pl)
}
