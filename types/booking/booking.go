package booking

import (
	"fmt"

	"msc-booking/utils"
)

// VerifyRequest starts the email-verification step of a booking.
type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=255"`
	Phone string `json:"phone" validate:"omitempty,phone"`
}

// ConfirmRequest submits the emailed code back.
type ConfirmRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// BookingCreateRequest is the full payload of the gated create.
type BookingCreateRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=255"`
	Phone          string `json:"phone" validate:"required,phone"`
	Email          string `json:"email" validate:"required,email"`
	Passengers     int    `json:"passengers" validate:"required,min=1"`
	PickupLocation string `json:"pickupLocation" validate:"required,min=1"`
	DropLocation   string `json:"dropLocation" validate:"required,min=1"`
	StartDate      string `json:"startDate" validate:"required"`
	StartTime      string `json:"startTime" validate:"required"`
}

// StatusUpdateRequest changes a booking's lifecycle status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed rejected completed"`
}

func (b BookingCreateRequest) Validate() error {
	if err := utils.ValidateStruct(b); err != nil {
		return err
	}
	if _, err := utils.ParseStartDate(b.StartDate); err != nil {
		return fmt.Errorf("startDate must be a valid YYYY-MM-DD date")
	}
	if !utils.ValidStartTime(b.StartTime) {
		return fmt.Errorf("startTime must be HH:MM")
	}
	return nil
}

func (v VerifyRequest) Validate() error {
	return utils.ValidateStruct(v)
}

func (c ConfirmRequest) Validate() error {
	return utils.ValidateStruct(c)
}

func (s StatusUpdateRequest) Validate() error {
	return utils.ValidateStruct(s)
}
