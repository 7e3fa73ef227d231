package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"flight-booking/httpServices/mailer"
	"flight-booking/logger"
	bookingModel "flight-booking/models/booking"
	userModel "flight-booking/models/user"
	"flight-booking/services/guest"
	"flight-booking/services/locator"
	"flight-booking/storage"
	"flight-booking/types"
	bookingTypes "flight-booking/types/booking"
	"flight-booking/utils"

	"github.com/gofiber/fiber/v2"
)

type BookingController struct {
	store        storage.Store
	guestService *guest.Service
	mailerClient *mailer.Client
}

// NewBookingController wires the booking endpoints. mailerClient may be nil;
// confirmation emails are then skipped.
func NewBookingController(store storage.Store, guestService *guest.Service, mailerClient *mailer.Client) *BookingController {
	return &BookingController{
		store:        store,
		guestService: guestService,
		mailerClient: mailerClient,
	}
}

// buildBooking assembles a pending booking from the validated trip selection.
func buildBooking(ownerID uint, contactEmail string, trip bookingTypes.TripInput, passengers []bookingTypes.PassengerInput) *bookingModel.Booking {
	list := make(bookingModel.PassengerList, 0, len(passengers))
	for _, p := range passengers {
		list = append(list, bookingModel.Passenger{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			BirthDate: p.BirthDate,
			Document:  p.Document,
		})
	}

	b := &bookingModel.Booking{
		UserID:       ownerID,
		ContactEmail: guest.NormalizeEmail(contactEmail),
		FlightNumber: trip.FlightNumber,
		Origin:       trip.Origin,
		Destination:  trip.Destination,
		DepartureAt:  trip.DepartureAt,
		ArrivalAt:    trip.ArrivalAt,
		CabinClass:   trip.CabinClass,
		Passengers:   list,
		AmountCents:  trip.AmountCents * int64(len(passengers)),
		Currency:     trip.Currency,
		Status:       bookingModel.BookingStatusPending,
	}

	if trip.ReturnFlightNumber != "" {
		rfn := trip.ReturnFlightNumber
		b.ReturnFlightNumber = &rfn
		b.ReturnDepartureAt = trip.ReturnDepartureAt
		b.ReturnArrivalAt = trip.ReturnArrivalAt
	}

	return b
}

// sendConfirmation emails the locator to the contact address off the request
// path. Mail failures never fail the booking.
func (h *BookingController) sendConfirmation(b *bookingModel.Booking) {
	if h.mailerClient == nil {
		return
	}
	go func(snapshot bookingModel.Booking) {
		if err := h.mailerClient.SendBookingConfirmation(&snapshot); err != nil {
			logger.Warning(fmt.Sprintf("Failed to send confirmation email for booking %s: %v", snapshot.LocatorCode, err))
		}
	}(*b)
}

// GuestStore creates a booking without an account. The booking is attached to
// the guest sentinel owner; the caller-supplied contact address plus the
// generated locator are what later unlock lookup, payment and cancellation.
func (h *BookingController) GuestStore(c *fiber.Ctx) error {
	var req bookingTypes.GuestBookingCreateRequest
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

	ownerID, err := h.guestService.Resolve(c.Context())
	if err != nil {
		logger.Error("Failed to resolve guest owner", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newBooking := buildBooking(ownerID, req.ContactEmail, req.Trip, req.Passengers)

	if err := locator.CreateWithLocator(c.Context(), h.store, newBooking); err != nil {
		logger.Error("Failed to create guest booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.sendConfirmation(newBooking)

	logger.Success("Guest booking created. Locator: " + newBooking.LocatorCode)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Booking created successfully",
		Status:  fiber.StatusCreated,
		Data:    newBooking,
	})
}

// verificationFailure is the single response for every guest access miss:
// wrong locator, wrong contact address and non-guest booking are deliberately
// indistinguishable.
func verificationFailure(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
		Message: "Booking not found or access denied",
		Status:  fiber.StatusNotFound,
	})
}

// GuestLookup returns a guest booking to whoever presents the matching
// (locator, contact) pair.
func (h *BookingController) GuestLookup(c *fiber.Ctx) error {
	var req bookingTypes.GuestAccessRequest
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

	found, err := h.guestService.VerifyAccess(c.Context(), req.Locator, req.ContactEmail)
	if err != nil {
		if errors.Is(err, guest.ErrVerificationFailed) {
			return verificationFailure(c)
		}
		logger.Error("Guest booking lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to look up booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Booking fetched successfully",
		Status:  fiber.StatusOK,
		Data:    found,
	})
}

// GuestCancel cancels a guest booking after the same verification gate.
func (h *BookingController) GuestCancel(c *fiber.Ctx) error {
	var req bookingTypes.GuestAccessRequest
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

	found, err := h.guestService.VerifyAccess(c.Context(), req.Locator, req.ContactEmail)
	if err != nil {
		if errors.Is(err, guest.ErrVerificationFailed) {
			return verificationFailure(c)
		}
		logger.Error("Guest booking lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to cancel booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return h.cancel(c, found)
}

// cancel performs the shared status transition for guest and account flows.
func (h *BookingController) cancel(c *fiber.Ctx, b *bookingModel.Booking) error {
	if !b.Status.CanBeCancelled() {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "Booking can no longer be cancelled",
			Status:  fiber.StatusConflict,
		})
	}

	err := h.store.TransitionBookingStatus(c.Context(), b.ID, b.Status, bookingModel.BookingStatusCancelled)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
				Message: "Booking can no longer be cancelled",
				Status:  fiber.StatusConflict,
			})
		}
		logger.Error("Failed to cancel booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to cancel booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	updated, err := h.store.BookingByID(c.Context(), b.ID)
	if err != nil {
		logger.Error("Failed to reload cancelled booking", err)
		updated = b
	}

	logger.Success("Booking cancelled. Locator: " + b.LocatorCode)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Booking cancelled successfully",
		Status:  fiber.StatusOK,
		Data:    updated,
	})
}

// currentUser loads the authenticated account from the token claims.
func (h *BookingController) currentUser(c *fiber.Ctx) (*userModel.User, error) {
	uid, err := utils.ExtractUUIDFromContext(c)
	if err != nil {
		return nil, err
	}
	return h.store.UserByUUID(c.Context(), uid)
}

// Store creates a booking for the authenticated account. The contact address
// is the account's own email.
func (h *BookingController) Store(c *fiber.Ctx) error {
	account, err := h.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Account not found",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req bookingTypes.BookingCreateRequest
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

	newBooking := buildBooking(account.ID, account.Email, req.Trip, req.Passengers)

	if err := locator.CreateWithLocator(c.Context(), h.store, newBooking); err != nil {
		logger.Error("Failed to create booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.sendConfirmation(newBooking)

	logger.Success("Booking created. Locator: " + newBooking.LocatorCode + ", user: " + account.Uuid)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Booking created successfully",
		Status:  fiber.StatusCreated,
		Data:    newBooking,
	})
}

// Index lists the authenticated account's bookings.
func (h *BookingController) Index(c *fiber.Ctx) error {
	account, err := h.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Account not found",
			Status:  fiber.StatusUnauthorized,
		})
	}

	bookings, err := h.store.BookingsByUser(c.Context(), account.ID)
	if err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list bookings",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Bookings fetched successfully",
		Status:  fiber.StatusOK,
		Data:    bookings,
	})
}

// ownedBooking loads a booking by path id and checks it belongs to the
// account. A foreign booking reads as not found, not forbidden.
func (h *BookingController) ownedBooking(c *fiber.Ctx) (*bookingModel.Booking, error) {
	account, err := h.currentUser(c)
	if err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Account not found",
			Status:  fiber.StatusUnauthorized,
		})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid booking id",
			Status:  fiber.StatusBadRequest,
		})
	}

	found, err := h.store.BookingByID(c.Context(), uint(id))
	if err != nil || found.UserID != account.ID {
		return nil, c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Booking not found",
			Status:  fiber.StatusNotFound,
		})
	}

	return found, nil
}

// Show returns one of the authenticated account's bookings.
func (h *BookingController) Show(c *fiber.Ctx) error {
	found, err := h.ownedBooking(c)
	if found == nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Booking fetched successfully",
		Status:  fiber.StatusOK,
		Data:    found,
	})
}

// Cancel cancels one of the authenticated account's bookings.
func (h *BookingController) Cancel(c *fiber.Ctx) error {
	found, err := h.ownedBooking(c)
	if found == nil {
		return err
	}

	return h.cancel(c, found)
}

// AdminShow looks up any booking by locator, without the guest contact gate.
// Support staff resolving traveller issues is the only caller; the route is
// admin-guarded.
func (h *BookingController) AdminShow(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("locator")))
	if len(code) != 6 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Locator must be 6 characters",
			Status:  fiber.StatusBadRequest,
		})
	}

	found, err := h.store.BookingByLocator(c.Context(), code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Booking not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to look up booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to look up booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Booking fetched successfully",
		Status:  fiber.StatusOK,
		Data:    found,
	})
}
