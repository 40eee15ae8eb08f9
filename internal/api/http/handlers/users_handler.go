package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ada-support/helpdesk/internal/api/dto"
	"github.com/ada-support/helpdesk/internal/auth"
	"github.com/ada-support/helpdesk/internal/domain"
	"github.com/ada-support/helpdesk/internal/service"
	apperrors "github.com/ada-support/helpdesk/pkg/util"
)

// UsersHandler exposes registration, login and user management endpoints.
type UsersHandler struct {
	authService *service.AuthService
	otpService  *service.OTPService
	userService *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, otpService *service.OTPService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{
		authService: authService,
		otpService:  otpService,
		userService: userService,
	}
}

// SendOTP handles POST /api/user/send-otp.
func (h *UsersHandler) SendOTP(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Email is required")
	}

	code, err := h.otpService.Issue(c.Context(), req.Email)
	if err != nil {
		return err
	}

	// the code is echoed in the payload, matching the original service
	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP sent successfully",
		"otp":     code,
	})
}

// CreateUser handles POST /api/user/create-user.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("All fields are required")
	}

	user, err := h.authService.Register(c.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Process:   req.Process,
		Email:     req.Email,
		EmpID:     req.EmpID,
		Password:  req.Password,
		OTP:       req.OTP,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
		"data":    dto.NewUserResponse(user),
	})
}

// Login handles POST /api/user/user-login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Email and password are required")
	}

	user, token, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User logged in successfully",
		"User":    dto.NewUserResponse(user),
		"token":   token,
	})
}

// GetUsers handles GET /api/user/getUsers (admin only).
func (h *UsersHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User data retrieved successfully",
		"users":   dto.NewUserResponses(users),
	})
}

// DeleteUser handles DELETE /api/user/deleteUser/:id (admin only).
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized access")
	}

	if err := h.userService.DeleteUser(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}

// UpdateUser handles PUT /api/user/updateUser/:id (admin only).
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Validation error")
	}

	input := service.UserUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.userService.UpdateUser(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// UpdateProfile handles PUT /api/user/update-profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized access")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("All fields are required")
	}

	user, err := h.userService.UpdateProfile(c.Context(), actor, service.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		JobTitle:  req.JobTitle,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile details updated successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// GetProfile handles GET /api/user/get-profile-details.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized access")
	}

	user, err := h.userService.GetProfile(c.Context(), actor)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Details fetched successfully",
		"profile": dto.NewUserResponse(user),
	})
}
