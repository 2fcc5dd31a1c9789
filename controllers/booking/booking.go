package booking

import (
	"encoding/json"
	"errors"
	"fmt"

	"msc-booking/logger"
	bookingModel "msc-booking/models/booking"
	"msc-booking/services/mailer"
	"msc-booking/services/verification"
	"msc-booking/storage"
	"msc-booking/types"
	bookingTypes "msc-booking/types/booking"

	"github.com/gofiber/fiber/v2"
)

// BookingController handles the verification-gated booking flow and the
// admin booking endpoints.
type BookingController struct {
	Storage storage.IStorage
	Ledger  *verification.Service
	Mail    *mailer.Dispatcher
	Notify  []string
}

// NewBookingController creates a new booking controller
func NewBookingController(store storage.IStorage, ledger *verification.Service, mail *mailer.Dispatcher, notify []string) *BookingController {
	return &BookingController{
		Storage: store,
		Ledger:  ledger,
		Mail:    mail,
		Notify:  notify,
	}
}

// Verify mints a verification code for the submitted email and sends it.
func (bc *BookingController) Verify(c *fiber.Ctx) error {
	var req bookingTypes.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	payload, _ := json.Marshal(req)
	rec, err := bc.Ledger.Request(req.Email, payload)
	if err != nil {
		if errors.Is(err, verification.ErrTooManyRequests) {
			return c.Status(fiber.StatusTooManyRequests).JSON(types.ApiResponse{
				Status:  fiber.StatusTooManyRequests,
				Message: "Too many verification requests, try again later",
			})
		}
		logger.Error("Failed to mint verification code", err)
		return internalError(c)
	}

	emailSent := bc.Mail.Send(mailer.VerificationCodeMessage(req.Email, req.Name, rec.Code))
	if !emailSent {
		logger.Warning("Verification code email was not delivered to " + req.Email)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success:   true,
		Status:    fiber.StatusOK,
		Message:   "Verification code sent",
		EmailSent: &emailSent,
	})
}

// Confirm validates the emailed code and marks the email as verified.
func (bc *BookingController) Confirm(c *fiber.Ctx) error {
	var req bookingTypes.ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := bc.Ledger.Confirm(req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, verification.ErrNotRequested):
			return badRequest(c, "Verification code expired or never requested")
		case errors.Is(err, verification.ErrCodeMismatch):
			return badRequest(c, "Invalid verification code")
		default:
			logger.Error("Failed to confirm verification code", err)
			return internalError(c)
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Status:  fiber.StatusOK,
		Message: "Email verified",
	})
}

// Store creates a booking for a previously verified email. The verification
// record is consumed only after the booking is durably persisted; a second
// create with the same email then fails the gate again.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := bc.Ledger.Verified(req.Email); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Email not verified",
		})
	}

	b := &bookingModel.Booking{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Passengers:     req.Passengers,
		PickupLocation: req.PickupLocation,
		DropLocation:   req.DropLocation,
		StartDate:      req.StartDate,
		StartTime:      req.StartTime,
	}

	created, err := bc.Storage.Booking().Create(c.Context(), b)
	if err != nil {
		logger.Error("Failed to create booking", err)
		return internalError(c)
	}

	// One-time use: the challenge is spent now that the write landed.
	if _, err := bc.Ledger.Consume(req.Email); err != nil {
		logger.Warning("Verification record already consumed for " + req.Email)
	}

	logger.Success(fmt.Sprintf("Booking %s created for %s", created.ID, created.Email))

	// Mail failures never fail the response; the booking is already durable.
	bc.Mail.Enqueue(mailer.BookingConfirmationMessage(created))
	if len(bc.Notify) > 0 {
		bc.Mail.Enqueue(mailer.BookingNoticeMessage(bc.Notify, created))
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Success: true,
		Status:  fiber.StatusCreated,
		Message: "Booking created",
		Data:    created,
	})
}

// Index lists all bookings, newest first.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	bookings, err := bc.Storage.Booking().GetAll(c.Context())
	if err != nil {
		logger.Error("Failed to list bookings", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Status:  fiber.StatusOK,
		Message: "Bookings fetched",
		Data:    bookings,
	})
}

// Show fetches one booking by its MSC number.
func (bc *BookingController) Show(c *fiber.Ctx) error {
	id := c.Params("id")
	b, err := bc.Storage.Booking().GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound(c, id)
		}
		logger.Error("Failed to fetch booking "+id, err)
		return internalError(c)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Status:  fiber.StatusOK,
		Message: "Booking fetched",
		Data:    b,
	})
}

// UpdateStatus moves a booking to a new status and emails the customer.
// Any status may move to any other.
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req bookingTypes.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	status := bookingModel.BookingStatus(req.Status)
	if !status.IsValid() {
		return badRequest(c, "Invalid booking status")
	}

	updated, err := bc.Storage.Booking().UpdateStatus(c.Context(), id, status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound(c, id)
		}
		logger.Error("Failed to update booking "+id, err)
		return internalError(c)
	}

	logger.Success(fmt.Sprintf("Booking %s moved to %s", updated.ID, updated.Status))
	bc.Mail.Enqueue(mailer.StatusUpdateMessage(updated))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Status:  fiber.StatusOK,
		Message: "Booking status updated",
		Data:    updated,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
	})
}

func notFound(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
		Status:  fiber.StatusNotFound,
		Message: "Booking " + id + " not found",
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Service unavailable",
	})
}
