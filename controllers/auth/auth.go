package auth

import (
	"errors"
	"fmt"
	"os"

	"flight-booking/constants"
	"flight-booking/logger"
	userModel "flight-booking/models/user"
	"flight-booking/services/guest"
	"flight-booking/storage"
	"flight-booking/types"
	authTypes "flight-booking/types/auth"
	"flight-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	store        storage.Store
	guestService *guest.Service
}

func NewAuthController(store storage.Store, guestService *guest.Service) *AuthController {
	return &AuthController{store: store, guestService: guestService}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error("Registration validation failed", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	email := guest.NormalizeEmail(req.Email)

	// The sentinel address is reserved for the internal guest owner; letting a
	// real account register it would hand that account every guest booking.
	if email == h.guestService.SentinelEmail() {
		logger.Warning("Attempt to register the reserved guest address: " + email)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "This email address cannot be used",
			Status:  fiber.StatusBadRequest,
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	hashStr := string(hash)
	newUser := userModel.User{
		Uuid:         uuid.NewString(),
		Email:        email,
		FullName:     req.FullName,
		Role:         constants.RoleCustomer,
		PasswordHash: &hashStr,
	}

	if err := h.store.CreateUser(c.Context(), &newUser); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
				Message: "An account with this email already exists",
				Status:  fiber.StatusConflict,
			})
		}
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("User registered successfully. UUID: " + newUser.Uuid)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Account created successfully",
		Status:  fiber.StatusCreated,
		Data:    newUser,
	})
}

func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
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

	invalidCredentials := func() error {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	account, err := h.store.UserByEmail(c.Context(), guest.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return invalidCredentials()
		}
		logger.Error("Failed to look up user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Login failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	// The guest sentinel has no password hash and is rejected here.
	if !account.CanAuthenticate() {
		return invalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(req.Password)); err != nil {
		return invalidCredentials()
	}

	token, err := utils.GenerateToken(account)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Login failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "access", token, 24*60*60) // 24 hours

	logger.Success("User logged in successfully. uuid: " + account.Uuid)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
		Data: authTypes.LoginResponse{
			Token:    token,
			Uuid:     account.Uuid,
			Email:    account.Email,
			FullName: account.FullName,
			Role:     account.Role,
		},
	})
}

func (h *AuthController) Profile(c *fiber.Ctx) error {
	uid, err := utils.ExtractUUIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusUnauthorized,
		})
	}

	account, err := h.store.UserByUUID(c.Context(), uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Account not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to load profile",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile fetched successfully",
		Status:  fiber.StatusOK,
		Data:    account,
	})
}

func (h *AuthController) Logout(c *fiber.Ctx) error {
	h.setSecureCookie(c, "access", "", -1) // Expire immediately

	logger.Success("Logout successful")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logout successful",
		Status:  fiber.StatusOK,
		Data:    nil,
	})
}
