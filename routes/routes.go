package routes

import (
	"os"

	"flight-booking/constants"
	"flight-booking/controllers/auth"
	"flight-booking/controllers/booking"
	"flight-booking/controllers/flight"
	"flight-booking/controllers/payment"
	"flight-booking/httpServices/flightdata"
	"flight-booking/httpServices/mailer"
	"flight-booking/httpServices/payments"
	"flight-booking/logger"
	"flight-booking/middleware"
	"flight-booking/services/guest"
	"flight-booking/services/tripparser"
	"flight-booking/storage"
	"flight-booking/types"

	"github.com/gofiber/fiber/v2"
)

// The optional* constructors return nil when the provider's base URL is not
// configured; controllers treat a nil client as "feature disabled".
func optionalFlightData() *flightdata.Client {
	baseURL := os.Getenv("FLIGHTDATA_BASE_URL")
	if baseURL == "" {
		return nil
	}
	return flightdata.NewClient(baseURL, os.Getenv("FLIGHTDATA_API_KEY"))
}

func optionalPayments() *payments.Client {
	baseURL := os.Getenv("PAYMENT_API_BASE_URL")
	if baseURL == "" {
		return nil
	}
	return payments.NewClient(baseURL, os.Getenv("PAYMENT_API_KEY"))
}

func optionalMailer() *mailer.Client {
	baseURL := os.Getenv("MAIL_API_BASE_URL")
	if baseURL == "" {
		return nil
	}
	return mailer.NewClient(baseURL, os.Getenv("MAIL_API_KEY"))
}

func SetupRoutes(app *fiber.App, store storage.Store) {
	asyncLogger := logger.NewAsyncLogger(store)
	guestService := guest.NewService(store)

	flightDataClient := optionalFlightData()
	paymentClient := optionalPayments()
	mailerClient := optionalMailer()

	authController := auth.NewAuthController(store, guestService)
	flightController := flight.NewFlightController(flightDataClient, tripparser.NewService())
	bookingController := booking.NewBookingController(store, guestService, mailerClient)
	paymentController := payment.NewPaymentController(store, guestService, paymentClient, mailerClient)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Use(middleware.RequestLog(asyncLogger))

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "flight-booking API",
			Status:  fiber.StatusOK,
		})
	})

	/*=============================================================================
	| Auth Routes
	===============================================================================*/
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authController.Register)
	authGroup.Post("/login", authController.Login)
	authGroup.Get("/profile", middleware.RequireAuth(), authController.Profile)
	authGroup.Post("/logout", middleware.RequireAuth(), authController.Logout)

	/*=============================================================================
	| Flight Routes
	===============================================================================*/
	flightGroup := api.Group("/flights")
	flightGroup.Get("/search", flightController.Search)
	flightGroup.Post("/parse-query", flightController.ParseQuery)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings")

	// Guest flow: no account, gated by (locator, contact email)
	bookingGroup.Post("/guest", bookingController.GuestStore)
	bookingGroup.Post("/guest/lookup", bookingController.GuestLookup)
	bookingGroup.Post("/guest/cancel", bookingController.GuestCancel)

	// Account flow
	bookingGroup.Post("/", middleware.RequireAuth(), bookingController.Store)
	bookingGroup.Get("/", middleware.RequireAuth(), bookingController.Index)
	bookingGroup.Get("/:id", middleware.RequireAuth(), bookingController.Show)
	bookingGroup.Post("/:id/cancel", middleware.RequireAuth(), bookingController.Cancel)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	adminGroup := api.Group("/admin").Use(middleware.RequireRoles(constants.RoleAdmin))
	adminGroup.Get("/bookings/:locator", bookingController.AdminShow)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	paymentGroup := api.Group("/payments")
	paymentGroup.Post("/guest/intent", paymentController.CreateGuestIntent)
	paymentGroup.Post("/intent", middleware.RequireAuth(), paymentController.CreateIntent)
	paymentGroup.Post("/webhook", paymentController.Webhook)
}
