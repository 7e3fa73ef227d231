package payment

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"strconv"

	"flight-booking/httpServices/mailer"
	"flight-booking/httpServices/payments"
	"flight-booking/logger"
	bookingModel "flight-booking/models/booking"
	"flight-booking/services/guest"
	"flight-booking/storage"
	"flight-booking/types"
	paymentTypes "flight-booking/types/payment"
	"flight-booking/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentController struct {
	store         storage.Store
	guestService  *guest.Service
	paymentClient *payments.Client
	mailerClient  *mailer.Client
}

// NewPaymentController wires the payment endpoints. paymentClient may be nil;
// intent creation then reports the gateway as unconfigured.
func NewPaymentController(store storage.Store, guestService *guest.Service, paymentClient *payments.Client, mailerClient *mailer.Client) *PaymentController {
	return &PaymentController{
		store:         store,
		guestService:  guestService,
		paymentClient: paymentClient,
		mailerClient:  mailerClient,
	}
}

// createIntent registers the charge with the gateway and attaches it to the
// booking. The client secret is stored encrypted; only the response carries it
// in the clear.
func (h *PaymentController) createIntent(c *fiber.Ctx, b *bookingModel.Booking) error {
	if h.paymentClient == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.ErrorResponse{
			Message: "Payment processing is not configured",
			Status:  fiber.StatusServiceUnavailable,
		})
	}

	if !b.Status.CanInitiatePayment() {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "Booking is not awaiting payment",
			Status:  fiber.StatusConflict,
		})
	}

	intent, err := h.paymentClient.CreateIntent(payments.CreateIntentRequest{
		AmountCents: b.AmountCents,
		Currency:    b.Currency,
		Description: "Flight booking " + b.LocatorCode,
		Metadata: map[string]string{
			"locator":    b.LocatorCode,
			"booking_id": strconv.FormatUint(uint64(b.ID), 10),
		},
	})
	if err != nil {
		logger.Error("Failed to create payment intent", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ErrorResponse{
			Message: "Failed to communicate with the payment gateway",
			Status:  fiber.StatusBadGateway,
		})
	}

	secretEnc, err := utils.EncryptData(intent.ClientSecret)
	if err != nil {
		logger.Error("Failed to encrypt client secret", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to initiate payment",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := h.store.AttachPaymentIntent(c.Context(), b.ID, intent.ID, secretEnc); err != nil {
		logger.Error("Failed to attach payment intent", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to initiate payment",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Payment intent created for booking " + b.LocatorCode + ": " + intent.ID)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Payment intent created successfully",
		Status:  fiber.StatusCreated,
		Data: paymentTypes.IntentResponse{
			IntentID:     intent.ID,
			ClientSecret: intent.ClientSecret,
			AmountCents:  b.AmountCents,
			Currency:     b.Currency,
		},
	})
}

// CreateGuestIntent initiates payment for a guest booking. The same
// (locator, contact) gate as lookup applies; a miss is indistinguishable from
// a nonexistent booking.
func (h *PaymentController) CreateGuestIntent(c *fiber.Ctx) error {
	var req paymentTypes.GuestIntentRequest
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
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Booking not found or access denied",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Guest booking lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to initiate payment",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return h.createIntent(c, found)
}

// CreateIntent initiates payment for one of the authenticated account's
// bookings.
func (h *PaymentController) CreateIntent(c *fiber.Ctx) error {
	uid, err := utils.ExtractUUIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusUnauthorized,
		})
	}

	account, err := h.store.UserByUUID(c.Context(), uid)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Account not found",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req paymentTypes.IntentRequest
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

	found, err := h.store.BookingByID(c.Context(), req.BookingID)
	if err != nil || found.UserID != account.ID {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Booking not found",
			Status:  fiber.StatusNotFound,
		})
	}

	return h.createIntent(c, found)
}

// Webhook handles gateway callbacks. Confirmation is idempotent: a repeated
// success event for an already confirmed booking acknowledges without change.
func (h *PaymentController) Webhook(c *fiber.Ctx) error {
	secret := os.Getenv("PAYMENT_WEBHOOK_SECRET")
	if secret == "" {
		logger.Error("PAYMENT_WEBHOOK_SECRET is not set", nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.ErrorResponse{
			Message: "Webhook processing is not configured",
			Status:  fiber.StatusServiceUnavailable,
		})
	}

	provided := c.Get("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
		logger.Warning("Webhook called with an invalid secret")
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid webhook signature",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var event paymentTypes.WebhookEvent
	if err := c.BodyParser(&event); err != nil {
		logger.Error("Error parsing webhook payload", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid webhook payload",
			Status:  fiber.StatusBadRequest,
		})
	}

	acknowledged := types.ApiResponse{
		Message: "Webhook processed",
		Status:  fiber.StatusOK,
	}

	if event.Intent.Status != payments.IntentStatusSucceeded {
		// Failed and in-progress events leave the booking pending; the traveller
		// can retry payment with a fresh intent.
		logger.Info("Ignoring webhook event " + event.Type + " with status " + event.Intent.Status)
		return c.Status(fiber.StatusOK).JSON(acknowledged)
	}

	found, err := h.store.BookingByPaymentIntent(c.Context(), event.Intent.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.Warning("Webhook for unknown payment intent: " + event.Intent.ID)
			return c.Status(fiber.StatusOK).JSON(acknowledged)
		}
		logger.Error("Failed to load booking for webhook", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to process webhook",
			Status:  fiber.StatusInternalServerError,
		})
	}

	err = h.store.TransitionBookingStatus(c.Context(), found.ID,
		bookingModel.BookingStatusPending, bookingModel.BookingStatusConfirmed)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			// Duplicate delivery or a booking cancelled in the meantime.
			logger.Info("Booking " + found.LocatorCode + " not pending, webhook ignored")
			return c.Status(fiber.StatusOK).JSON(acknowledged)
		}
		logger.Error("Failed to confirm booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to process webhook",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if h.mailerClient != nil {
		go func(snapshot bookingModel.Booking) {
			if err := h.mailerClient.SendPaymentReceipt(&snapshot); err != nil {
				logger.Warning(fmt.Sprintf("Failed to send receipt for booking %s: %v", snapshot.LocatorCode, err))
			}
		}(*found)
	}

	logger.Success("Booking confirmed via webhook. Locator: " + found.LocatorCode)
	return c.Status(fiber.StatusOK).JSON(acknowledged)
}
