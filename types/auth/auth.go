package auth

import (
	"msc-booking/utils"
)

// LoginRequest authenticates an admin account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (l LoginRequest) Validate() error {
	return utils.ValidateStruct(l)
}
