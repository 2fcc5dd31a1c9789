package contact

import (
	"msc-booking/utils"
)

// VerifyRequest starts the email-verification step of a contact message.
// The message is retained with the verification record so the confirm step
// can deliver it without re-submission.
type VerifyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

// ConfirmRequest submits the emailed code back together with the message
// fields.
type ConfirmRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
	Code    string `json:"code" validate:"required,len=6,numeric"`
}

func (v VerifyRequest) Validate() error {
	return utils.ValidateStruct(v)
}

func (c ConfirmRequest) Validate() error {
	return utils.ValidateStruct(c)
}
