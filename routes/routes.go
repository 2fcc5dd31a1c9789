package routes

import (
	"msc-booking/config"
	"msc-booking/controllers/auth"
	"msc-booking/controllers/booking"
	"msc-booking/controllers/contact"
	"msc-booking/middleware"
	"msc-booking/services/mailer"
	"msc-booking/services/verification"
	"msc-booking/storage"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, store storage.IStorage, cfg config.Config) *mailer.Dispatcher {
	ledger := verification.NewService()
	dispatcher := mailer.NewDispatcher(mailer.NewSMTPMailer(cfg))

	authController := auth.NewAuthController(store, cfg.JWTSecret)
	bookingController := booking.NewBookingController(store, ledger, dispatcher, cfg.NotifyEmails)
	contactController := contact.NewContactController(ledger, dispatcher, cfg.NotifyEmails)

	// Start the async mail worker goroutine
	go dispatcher.Process()

	app.Use(middleware.RequestLogger())

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")

	bookings := api.Group("/bookings")
	bookings.Post("/verify", bookingController.Verify)
	bookings.Post("/confirm", bookingController.Confirm)
	bookings.Post("/", bookingController.Store)

	contactGroup := api.Group("/contact")
	contactGroup.Post("/verify", contactController.Verify)
	contactGroup.Post("/confirm", contactController.Confirm)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	admin := api.Group("/admin")
	admin.Post("/login", authController.Login)

	guarded := admin.Use(middleware.RequireAdmin(cfg.JWTSecret))
	guarded.Get("/profile", authController.Profile)
	guarded.Post("/logout", authController.LogOut)
	guarded.Get("/bookings", bookingController.Index)
	guarded.Get("/bookings/:id", bookingController.Show)
	guarded.Put("/bookings/:id/status", bookingController.UpdateStatus)

	return dispatcher
}
