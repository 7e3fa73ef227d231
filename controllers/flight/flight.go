package flight

import (
	"fmt"

	"flight-booking/httpServices/flightdata"
	"flight-booking/logger"
	flightModel "flight-booking/models/flight"
	"flight-booking/services/schedule"
	"flight-booking/services/tripparser"
	"flight-booking/types"
	flightTypes "flight-booking/types/flight"

	"github.com/gofiber/fiber/v2"
)

type FlightController struct {
	flightData *flightdata.Client
	parser     *tripparser.Service
}

// NewFlightController wires the flight search endpoints. flightData may be
// nil; search then serves the bundled fallback schedule only.
func NewFlightController(flightData *flightdata.Client, parser *tripparser.Service) *FlightController {
	return &FlightController{flightData: flightData, parser: parser}
}

// Search returns bookable offers for a structured query. When a return date
// is present the reverse direction is searched as well.
func (h *FlightController) Search(c *fiber.Ctx) error {
	var req flightTypes.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		logger.Error("Error parsing query parameters", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing query parameters: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	outbound, err := h.offers(req)
	if err != nil {
		logger.Error("Flight search failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Flight search failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	data := fiber.Map{
		"outbound": outbound,
	}

	if req.ReturnDate != "" {
		inboundReq := req
		inboundReq.Origin, inboundReq.Destination = req.Destination, req.Origin
		inboundReq.DepartureDate = req.ReturnDate
		inboundReq.ReturnDate = ""

		inbound, err := h.offers(inboundReq)
		if err != nil {
			logger.Error("Return flight search failed", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Flight search failed",
				Status:  fiber.StatusInternalServerError,
			})
		}
		data["return"] = inbound
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Flights fetched successfully",
		Status:  fiber.StatusOK,
		Data:    data,
	})
}

// offers queries the external provider when configured and falls back to the
// bundled schedule when the provider is missing or unreachable.
func (h *FlightController) offers(req flightTypes.SearchRequest) ([]flightModel.Offer, error) {
	if h.flightData != nil {
		offers, err := h.flightData.SearchOffers(req)
		if err == nil {
			return offers, nil
		}
		logger.Warning(fmt.Sprintf("Flight data API unavailable, serving fallback schedule: %v", err))
	}
	return schedule.OffersFor(&req)
}

// ParseQuery turns a free-text trip request into a structured search query.
func (h *FlightController) ParseQuery(c *fiber.Ctx) error {
	var req flightTypes.ParseQueryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	parsed, err := h.parser.Parse(c.Context(), req.Query)
	if err != nil {
		logger.Error("Failed to parse trip query", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ErrorResponse{
			Message: "Could not understand the trip request",
			Status:  fiber.StatusBadGateway,
		})
	}

	logger.Success("Trip query parsed: " + parsed.Origin + " -> " + parsed.Destination)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Trip query parsed successfully",
		Status:  fiber.StatusOK,
		Data:    parsed,
	})
}
