package schedule

import (
	"testing"

	flightTypes "flight-booking/types/flight"
)

func TestOffersForKnownRoute(t *testing.T) {
	req := &flightTypes.SearchRequest{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2026-09-01",
		Passengers:    2,
	}

	offers, err := OffersFor(req)
	if err != nil {
		t.Fatalf("OffersFor() error: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("got %d offers, want 2", len(offers))
	}

	for _, o := range offers {
		if o.Origin != "JFK" || o.Destination != "LHR" {
			t.Fatalf("offer %s serves %s-%s", o.FlightNumber, o.Origin, o.Destination)
		}
		if o.DepartureAt.Format("2006-01-02") != req.DepartureDate {
			t.Fatalf("offer %s departs %v, want %s", o.FlightNumber, o.DepartureAt, req.DepartureDate)
		}
		if !o.ArrivalAt.After(o.DepartureAt) {
			t.Fatalf("offer %s arrives before it departs", o.FlightNumber)
		}
		if o.CabinClass != "economy" {
			t.Fatalf("cabin = %q, want default economy", o.CabinClass)
		}
	}
}

func TestOffersForCabinPricing(t *testing.T) {
	economy := &flightTypes.SearchRequest{
		Origin: "JFK", Destination: "LHR", DepartureDate: "2026-09-01", Passengers: 1,
	}
	business := &flightTypes.SearchRequest{
		Origin: "JFK", Destination: "LHR", DepartureDate: "2026-09-01", Passengers: 1, CabinClass: "business",
	}

	eco, err := OffersFor(economy)
	if err != nil {
		t.Fatalf("OffersFor(economy) error: %v", err)
	}
	biz, err := OffersFor(business)
	if err != nil {
		t.Fatalf("OffersFor(business) error: %v", err)
	}

	if len(eco) == 0 || len(biz) == 0 {
		t.Fatal("expected offers in both cabins")
	}
	if biz[0].PriceCents <= eco[0].PriceCents {
		t.Fatalf("business price %d not above economy %d", biz[0].PriceCents, eco[0].PriceCents)
	}
}

func TestOffersForUnknownRoute(t *testing.T) {
	req := &flightTypes.SearchRequest{
		Origin: "JFK", Destination: "SYD", DepartureDate: "2026-09-01", Passengers: 1,
	}

	offers, err := OffersFor(req)
	if err != nil {
		t.Fatalf("OffersFor() error: %v", err)
	}
	if len(offers) != 0 {
		t.Fatalf("got %d offers for an unserved route, want 0", len(offers))
	}
}

func TestOffersForBadDate(t *testing.T) {
	req := &flightTypes.SearchRequest{
		Origin: "JFK", Destination: "LHR", DepartureDate: "not-a-date", Passengers: 1,
	}
	if _, err := OffersFor(req); err == nil {
		t.Fatal("OffersFor() accepted an invalid date")
	}
}
