package contact

import (
	"encoding/json"
	"errors"

	"msc-booking/logger"
	"msc-booking/services/mailer"
	"msc-booking/services/verification"
	"msc-booking/types"
	contactTypes "msc-booking/types/contact"

	"github.com/gofiber/fiber/v2"
)

// ContactController handles the verification-gated contact form. Messages
// are delivered by email only; nothing is persisted.
type ContactController struct {
	Ledger *verification.Service
	Mail   *mailer.Dispatcher
	Notify []string
}

// NewContactController creates a new contact controller
func NewContactController(ledger *verification.Service, mail *mailer.Dispatcher, notify []string) *ContactController {
	return &ContactController{
		Ledger: ledger,
		Mail:   mail,
		Notify: notify,
	}
}

// Verify mints a verification code for the sender's email and sends it.
func (cc *ContactController) Verify(c *fiber.Ctx) error {
	var req contactTypes.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	payload, _ := json.Marshal(req)
	rec, err := cc.Ledger.Request(req.Email, payload)
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

	emailSent := cc.Mail.Send(mailer.VerificationCodeMessage(req.Email, req.Name, rec.Code))
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

// Confirm validates the code, delivers the message to the internal list and
// acknowledges the sender. The verification record is spent in the same
// step; there is no separate create call for contact messages.
func (cc *ContactController) Confirm(c *fiber.Ctx) error {
	var req contactTypes.ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := cc.Ledger.Confirm(req.Email, req.Code); err != nil {
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

	if _, err := cc.Ledger.Consume(req.Email); err != nil {
		logger.Warning("Verification record already consumed for " + req.Email)
	}

	logger.Success("Contact message accepted from " + req.Email)

	// Delivery is mail-only and non-fatal by contract.
	if len(cc.Notify) > 0 {
		cc.Mail.Enqueue(mailer.ContactMessage(cc.Notify, req.Name, req.Email, req.Phone, req.Message))
	}
	cc.Mail.Enqueue(mailer.ContactAckMessage(req.Email, req.Name))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Status:  fiber.StatusOK,
		Message: "Message sent",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Service unavailable",
	})
}
