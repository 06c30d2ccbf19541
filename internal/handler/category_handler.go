package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	errs "news-events-api/internal/errors"
	"news-events-api/internal/service"
)

// CategoryHandler handles category taxonomy endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents a category creation request. An empty slug
// is derived from the name.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateCategoryRequest represents a category update request. Absent fields
// keep their stored values.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// List godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// Get godoc
// @Summary Get a category by ID
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	category, err := h.categoryService.Get(c.Request().Context(), id, false)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Category retrieved successfully", category)
}

// ListPublic godoc
// @Summary List active categories for public clients
// @Tags categories
// @Produce json
// @Success 200 {object} Envelope
// @Router /categories/user [get]
func (h *CategoryHandler) ListPublic(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// GetPublic godoc
// @Summary Get an active category for public clients
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /categories/user/{id} [get]
func (h *CategoryHandler) GetPublic(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	category, err := h.categoryService.Get(c.Request().Context(), id, true)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Category retrieved successfully", category)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "Category fields"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return errs.E(errs.KindValidation, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.categoryService.Create(c.Request().Context(), service.CreateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Category created successfully", category)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body UpdateCategoryRequest true "Category fields"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return errs.E(errs.KindValidation, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, service.UpdateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Category updated successfully", category)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Category deleted successfully", nil)
}
