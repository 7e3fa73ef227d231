package flight

import (
	"time"
)

// Offer is a bookable flight returned by the flight-data API or the bundled
// fallback schedule. Offers are not persisted; the chosen one is denormalized
// onto the booking at creation time.
type Offer struct {
	FlightNumber   string    `json:"flight_number"`
	Airline        string    `json:"airline"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureAt    time.Time `json:"departure_at"`
	ArrivalAt      time.Time `json:"arrival_at"`
	CabinClass     string    `json:"cabin_class"`
	SeatsAvailable int       `json:"seats_available"`
	PriceCents     int64     `json:"price_cents"`
	Currency       string    `json:"currency"`
}

// Duration returns the flight time.
func (o Offer) Duration() time.Duration {
	return o.ArrivalAt.Sub(o.DepartureAt)
}
