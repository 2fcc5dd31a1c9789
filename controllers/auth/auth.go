package auth

import (
	"errors"
	"time"

	"msc-booking/logger"
	"msc-booking/middleware"
	"msc-booking/storage"
	"msc-booking/types"
	authTypes "msc-booking/types/auth"
	"msc-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is the admin session lifetime.
const tokenTTL = 24 * time.Hour

// AuthController handles admin authentication.
type AuthController struct {
	Storage   storage.IStorage
	JWTSecret string
}

// NewAuthController creates a new auth controller
func NewAuthController(store storage.IStorage, jwtSecret string) *AuthController {
	return &AuthController{
		Storage:   store,
		JWTSecret: jwtSecret,
	}
}

func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   maxAge,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Strict",
		Path:     "/",
	})
}

// Login checks the admin credentials and issues a session token.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	admin, err := h.Storage.Admin().GetByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return invalidCredentials(c)
		}
		logger.Error("Failed to load admin account", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Service unavailable",
		})
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		return invalidCredentials(c)
	}

	claims := jwt.MapClaims{
		"sub":   admin.ID,
		"email": admin.Email,
		"role":  middleware.AdminClaimRole,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.JWTSecret))
	if err != nil {
		logger.Error("Failed to sign session token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Service unavailable",
		})
	}

	h.setSecureCookie(c, "access", token, int(tokenTTL.Seconds()))
	logger.Success("Admin " + admin.Email + " logged in")

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Status:  fiber.StatusOK,
		Message: "Logged in",
		Token:   token,
	})
}

// Profile returns the authenticated admin identity from the token claims.
func (h *AuthController) Profile(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Status:  fiber.StatusOK,
		Message: "Profile fetched",
		Data: fiber.Map{
			"id":    c.Locals("admin_id"),
			"email": c.Locals("admin_email"),
		},
	})
}

// LogOut clears the session cookie.
func (h *AuthController) LogOut(c *fiber.Ctx) error {
	h.setSecureCookie(c, "access", "", -1)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Status:  fiber.StatusOK,
		Message: "Logged out",
	})
}

func invalidCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
		Status:  fiber.StatusUnauthorized,
		Message: "Invalid email or password",
	})
}
