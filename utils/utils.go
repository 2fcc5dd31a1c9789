package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/now"
	"golang.org/x/crypto/bcrypt"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidatePhoneNumber(fl.Field().String())
	})
	return v
}

// ValidateStruct runs the shared validator over a request DTO and folds the
// first failure into a field-level error message.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fmt.Errorf("field %s failed on the %s rule", fe.Field(), fe.Tag())
	}
	return err
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s-]{6,17}$`)

// ValidatePhoneNumber accepts international-style numbers with an optional
// leading + and 7 to 18 digits, spaces or dashes.
func ValidatePhoneNumber(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// ParseStartDate parses a YYYY-MM-DD booking date. Dates before today are
// rejected; the booking form never offers past days.
func ParseStartDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	if t.Before(now.BeginningOfDay()) {
		return time.Time{}, fmt.Errorf("date %s is in the past", value)
	}
	return t, nil
}

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidStartTime reports whether value is a HH:MM clock time.
func ValidStartTime(value string) bool {
	return timePattern.MatchString(strings.TrimSpace(value))
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
