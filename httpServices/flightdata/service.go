package flightdata

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	flightModel "flight-booking/models/flight"
	flightTypes "flight-booking/types/flight"
)

// Client talks to the third-party flight-data API. When the provider is not
// configured the controller serves the bundled fallback schedule instead.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// SearchOffers queries the provider for flights matching the request.
func (c *Client) SearchOffers(req flightTypes.SearchRequest) ([]flightModel.Offer, error) {
	params := url.Values{}
	params.Set("origin", req.Origin)
	params.Set("destination", req.Destination)
	params.Set("departure_date", req.DepartureDate)
	params.Set("passengers", strconv.Itoa(req.Passengers))
	if req.CabinClass != "" {
		params.Set("cabin_class", req.CabinClass)
	}

	httpReq, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/flights/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("flight data API returned non-OK status: " + resp.Status)
	}

	var apiResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	offers := make([]flightModel.Offer, 0, len(apiResp.Offers))
	for _, o := range apiResp.Offers {
		offers = append(offers, flightModel.Offer{
			FlightNumber:   o.FlightNumber,
			Airline:        o.Airline,
			Origin:         o.Origin,
			Destination:    o.Destination,
			DepartureAt:    o.DepartureAt,
			ArrivalAt:      o.ArrivalAt,
			CabinClass:     o.CabinClass,
			SeatsAvailable: o.SeatsAvailable,
			PriceCents:     o.PriceCents,
			Currency:       o.Currency,
		})
	}
	return offers, nil
}
