package schedule

import (
	"fmt"
	"time"

	flightModel "flight-booking/models/flight"
	flightTypes "flight-booking/types/flight"
	"flight-booking/utils"
)

// route is one daily rotation in the bundled fallback schedule. The schedule
// serves flight search whenever no external flight-data API is configured, or
// when that API is unreachable.
type route struct {
	Airline       string
	FlightNumber  string
	Origin        string
	Destination   string
	DepartureHour int
	DepartureMin  int
	Duration      time.Duration
	PriceCents    int64
	Seats         int
}

var routes = []route{
	{Airline: "Atlantic Air", FlightNumber: "AA101", Origin: "JFK", Destination: "LHR", DepartureHour: 8, DepartureMin: 30, Duration: 7*time.Hour + 10*time.Minute, PriceCents: 48900, Seats: 42},
	{Airline: "Atlantic Air", FlightNumber: "AA103", Origin: "JFK", Destination: "LHR", DepartureHour: 19, DepartureMin: 45, Duration: 7 * time.Hour, PriceCents: 52900, Seats: 18},
	{Airline: "Atlantic Air", FlightNumber: "AA102", Origin: "LHR", Destination: "JFK", DepartureHour: 11, DepartureMin: 15, Duration: 8*time.Hour + 5*time.Minute, PriceCents: 47500, Seats: 36},
	{Airline: "Atlantic Air", FlightNumber: "AA104", Origin: "LHR", Destination: "JFK", DepartureHour: 16, DepartureMin: 0, Duration: 8*time.Hour + 20*time.Minute, PriceCents: 51200, Seats: 24},
	{Airline: "EuroConnect", FlightNumber: "EC210", Origin: "LHR", Destination: "CDG", DepartureHour: 7, DepartureMin: 20, Duration: 1*time.Hour + 15*time.Minute, PriceCents: 9900, Seats: 60},
	{Airline: "EuroConnect", FlightNumber: "EC211", Origin: "CDG", Destination: "LHR", DepartureHour: 9, DepartureMin: 50, Duration: 1*time.Hour + 20*time.Minute, PriceCents: 10400, Seats: 55},
	{Airline: "EuroConnect", FlightNumber: "EC305", Origin: "CDG", Destination: "FCO", DepartureHour: 13, DepartureMin: 10, Duration: 2 * time.Hour, PriceCents: 12800, Seats: 48},
	{Airline: "EuroConnect", FlightNumber: "EC306", Origin: "FCO", Destination: "CDG", DepartureHour: 16, DepartureMin: 40, Duration: 2*time.Hour + 5*time.Minute, PriceCents: 13200, Seats: 40},
	{Airline: "Pacific Wings", FlightNumber: "PW501", Origin: "SFO", Destination: "NRT", DepartureHour: 10, DepartureMin: 0, Duration: 11*time.Hour + 5*time.Minute, PriceCents: 78900, Seats: 30},
	{Airline: "Pacific Wings", FlightNumber: "PW502", Origin: "NRT", Destination: "SFO", DepartureHour: 17, DepartureMin: 30, Duration: 9*time.Hour + 30*time.Minute, PriceCents: 76400, Seats: 28},
	{Airline: "Pacific Wings", FlightNumber: "PW520", Origin: "SFO", Destination: "JFK", DepartureHour: 6, DepartureMin: 45, Duration: 5*time.Hour + 25*time.Minute, PriceCents: 31900, Seats: 52},
	{Airline: "Pacific Wings", FlightNumber: "PW521", Origin: "JFK", Destination: "SFO", DepartureHour: 14, DepartureMin: 15, Duration: 6*time.Hour + 10*time.Minute, PriceCents: 32900, Seats: 44},
	{Airline: "Gulf Express", FlightNumber: "GX730", Origin: "DXB", Destination: "LHR", DepartureHour: 2, DepartureMin: 20, Duration: 7*time.Hour + 40*time.Minute, PriceCents: 56700, Seats: 34},
	{Airline: "Gulf Express", FlightNumber: "GX731", Origin: "LHR", Destination: "DXB", DepartureHour: 21, DepartureMin: 10, Duration: 6*time.Hour + 55*time.Minute, PriceCents: 55200, Seats: 38},
	{Airline: "Gulf Express", FlightNumber: "GX744", Origin: "DXB", Destination: "SIN", DepartureHour: 9, DepartureMin: 35, Duration: 7*time.Hour + 25*time.Minute, PriceCents: 44300, Seats: 46},
	{Airline: "Gulf Express", FlightNumber: "GX745", Origin: "SIN", Destination: "DXB", DepartureHour: 18, DepartureMin: 50, Duration: 7*time.Hour + 35*time.Minute, PriceCents: 45100, Seats: 41},
	{Airline: "Nordic Jet", FlightNumber: "NJ410", Origin: "CPH", Destination: "JFK", DepartureHour: 12, DepartureMin: 30, Duration: 8*time.Hour + 45*time.Minute, PriceCents: 42600, Seats: 33},
	{Airline: "Nordic Jet", FlightNumber: "NJ411", Origin: "JFK", Destination: "CPH", DepartureHour: 22, DepartureMin: 5, Duration: 7*time.Hour + 50*time.Minute, PriceCents: 43800, Seats: 29},
}

// Cabin multipliers applied to the route base price, in basis points.
var cabinMultipliers = map[string]int64{
	"economy":  10000,
	"business": 28000,
	"first":    45000,
}

// OffersFor returns the scheduled flights matching the query, priced for the
// requested cabin class. The whole departure day is searched.
func OffersFor(req *flightTypes.SearchRequest) ([]flightModel.Offer, error) {
	depDate, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("invalid departure date: %w", err)
	}
	dayStart, dayEnd := utils.DayWindow(depDate)

	cabin := req.CabinClass
	if cabin == "" {
		cabin = "economy"
	}
	multiplier := cabinMultipliers[cabin]

	var offers []flightModel.Offer
	for _, r := range routes {
		if r.Origin != req.Origin || r.Destination != req.Destination {
			continue
		}
		if r.Seats < req.Passengers {
			continue
		}

		dep := time.Date(depDate.Year(), depDate.Month(), depDate.Day(),
			r.DepartureHour, r.DepartureMin, 0, 0, time.UTC)
		if dep.Before(dayStart) || dep.After(dayEnd) {
			continue
		}

		offers = append(offers, flightModel.Offer{
			FlightNumber:   r.FlightNumber,
			Airline:        r.Airline,
			Origin:         r.Origin,
			Destination:    r.Destination,
			DepartureAt:    dep,
			ArrivalAt:      dep.Add(r.Duration),
			CabinClass:     cabin,
			SeatsAvailable: r.Seats,
			PriceCents:     r.PriceCents * multiplier / 10000,
			Currency:       "USD",
		})
	}

	return offers, nil
}
