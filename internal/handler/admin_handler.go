package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"news-events-api/internal/auth"
	errs "news-events-api/internal/errors"
	"news-events-api/internal/model"
	"news-events-api/internal/service"
)

// AdminHandler handles admin registration, login and profile endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// RegisterRequest represents an admin registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// LoginRequest represents an admin login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents a profile update request. Absent fields
// keep their stored values.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// AuthData is the payload returned by register and login.
type AuthData struct {
	Token string       `json:"token"`
	Admin *model.Admin `json:"admin"`
}

// Register godoc
// @Summary Register a new admin
// @Tags admin
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /admin/register [post]
func (h *AdminHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errs.E(errs.KindValidation, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, token, err := h.adminService.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Admin registered successfully", AuthData{
		Token: token,
		Admin: admin,
	})
}

// Login godoc
// @Summary Login as admin
// @Tags admin
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errs.E(errs.KindValidation, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, token, err := h.adminService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Login successful", AuthData{
		Token: token,
		Admin: admin,
	})
}

// Profile godoc
// @Summary Get the authenticated admin's profile
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /admin/profile [get]
func (h *AdminHandler) Profile(c echo.Context) error {
	claims, ok := auth.IdentityFromContext(c)
	if !ok {
		return errs.E(errs.KindUnauthorized, "Invalid token")
	}

	admin, err := h.adminService.Profile(c.Request().Context(), claims.AdminID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Profile retrieved successfully", admin)
}

// UpdateProfile godoc
// @Summary Update the authenticated admin's profile
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /admin/profile [put]
func (h *AdminHandler) UpdateProfile(c echo.Context) error {
	claims, ok := auth.IdentityFromContext(c)
	if !ok {
		return errs.E(errs.KindUnauthorized, "Invalid token")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return errs.E(errs.KindValidation, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, err := h.adminService.UpdateProfile(c.Request().Context(), claims.AdminID, req.Name, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Profile updated successfully", admin)
}

// List godoc
// @Summary List all admins
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /admin/all [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.adminService.List(c.Request().Context())
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Admins retrieved successfully", admins)
}
