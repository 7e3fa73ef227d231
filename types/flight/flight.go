package flight

import (
	"fmt"
	"strings"
	"time"
)

// SearchRequest is a structured flight search query. It is either bound from
// query parameters or produced by the natural-language trip parser.
type SearchRequest struct {
	Origin        string `json:"origin" query:"origin" validate:"required,len=3"`
	Destination   string `json:"destination" query:"destination" validate:"required,len=3"`
	DepartureDate string `json:"departure_date" query:"departure_date" validate:"required,datetime=2006-01-02"`
	ReturnDate    string `json:"return_date,omitempty" query:"return_date" validate:"omitempty,datetime=2006-01-02"`
	Passengers    int    `json:"passengers" query:"passengers" validate:"omitempty,min=1,max=9"`
	CabinClass    string `json:"cabin_class,omitempty" query:"cabin_class" validate:"omitempty,oneof=economy business first"`
}

// ParseQueryRequest wraps a free-text trip request for the AI parser.
type ParseQueryRequest struct {
	Query string `json:"query" validate:"required,min=3,max=500"`
}

func (r *SearchRequest) Validate() error {
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))

	if len(r.Origin) != 3 {
		return fmt.Errorf("origin must be a 3-letter airport code")
	}
	if len(r.Destination) != 3 {
		return fmt.Errorf("destination must be a 3-letter airport code")
	}
	if r.Origin == r.Destination {
		return fmt.Errorf("origin and destination must differ")
	}
	if _, err := time.Parse("2006-01-02", r.DepartureDate); err != nil {
		return fmt.Errorf("departure date must be YYYY-MM-DD")
	}
	if r.ReturnDate != "" {
		rd, err := time.Parse("2006-01-02", r.ReturnDate)
		if err != nil {
			return fmt.Errorf("return date must be YYYY-MM-DD")
		}
		dd, _ := time.Parse("2006-01-02", r.DepartureDate)
		if rd.Before(dd) {
			return fmt.Errorf("return date must not be before departure date")
		}
	}
	if r.Passengers == 0 {
		r.Passengers = 1
	}
	if r.Passengers < 1 || r.Passengers > 9 {
		return fmt.Errorf("passengers must be between 1 and 9")
	}
	if r.CabinClass != "" && r.CabinClass != "economy" && r.CabinClass != "business" && r.CabinClass != "first" {
		return fmt.Errorf("cabin class must be one of economy, business, first")
	}
	return nil
}

func (r ParseQueryRequest) Validate() error {
	q := strings.TrimSpace(r.Query)
	if len(q) < 3 {
		return fmt.Errorf("query is too short")
	}
	if len(q) > 500 {
		return fmt.Errorf("query is too long")
	}
	return nil
}
