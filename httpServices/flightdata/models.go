package flightdata

import (
	"time"
)

// offerPayload is one flight in the provider's search response.
type offerPayload struct {
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

// searchResponse is the provider's search envelope.
type searchResponse struct {
	Status string         `json:"status"`
	Offers []offerPayload `json:"offers"`
}
