package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	errs "news-events-api/internal/errors"
)

// Pagination bounds. Requests outside these are rejected before any query runs.
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// parseIDParam reads the :id route parameter as a positive integer.
func parseIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errs.E(errs.KindValidation, "Invalid ID parameter")
	}
	return id, nil
}

// intQuery parses an optional integer query parameter, distinguishing absent
// (default applies) from present but invalid (rejected).
func intQuery(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Ef(errs.KindValidation, "Parameter %s must be an integer", name)
	}
	return v, nil
}

// pageQuery validates pagination input up front: page must be at least 1 and
// limit must fall within [1, 100]. Out-of-range values are rejected, never
// clamped.
func pageQuery(c echo.Context) (page, limit int, err error) {
	page, err = intQuery(c, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	limit, err = intQuery(c, "limit", defaultPageLimit)
	if err != nil {
		return 0, 0, err
	}
	if page < 1 {
		return 0, 0, errs.E(errs.KindValidation, "Parameter page must be greater than or equal to 1")
	}
	if limit < 1 || limit > maxPageLimit {
		return 0, 0, errs.Ef(errs.KindValidation, "Parameter limit must be between 1 and %d", maxPageLimit)
	}
	return page, limit, nil
}
