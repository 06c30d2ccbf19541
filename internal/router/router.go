package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"news-events-api/internal/auth"
	"news-events-api/internal/config"
	errs "news-events-api/internal/errors"
	"news-events-api/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	adminHandler *handler.AdminHandler,
	categoryHandler *handler.CategoryHandler,
	newsHandler *handler.NewsEventHandler,
	healthHandler *handler.HealthHandler,
) {
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = newHTTPErrorHandler(cfg.IsDevelopment())

	// Uploaded images are served straight from disk
	e.Static("/uploads", cfg.UploadsDir)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/health", healthHandler.Check)

	authRequired := jwtGate(jwtService)

	// Admin auth and profiles
	api.POST("/admin/register", adminHandler.Register)
	api.POST("/admin/login", adminHandler.Login)
	api.GET("/admin/profile", adminHandler.Profile, authRequired)
	api.PUT("/admin/profile", adminHandler.UpdateProfile, authRequired)
	api.GET("/admin/all", adminHandler.List, authRequired)

	// Categories; the /user variants are public and see active rows only
	api.GET("/categories/user", categoryHandler.ListPublic)
	api.GET("/categories/user/:id", categoryHandler.GetPublic)
	api.GET("/categories", categoryHandler.List, authRequired)
	api.GET("/categories/:id", categoryHandler.Get, authRequired)
	api.POST("/categories", categoryHandler.Create, authRequired)
	api.PUT("/categories/:id", categoryHandler.Update, authRequired)
	api.DELETE("/categories/:id", categoryHandler.Delete, authRequired)

	// News and events; /public is the unauthenticated active-only listing
	api.GET("/news-and-events/public", newsHandler.ListPublic)
	api.GET("/news-and-events", newsHandler.List, authRequired)
	api.GET("/news-and-events/:id", newsHandler.Get, authRequired)
	api.POST("/news-and-events", newsHandler.Create, authRequired)
	api.PUT("/news-and-events/:id", newsHandler.Update, authRequired)
	api.DELETE("/news-and-events/:id", newsHandler.Delete, authRequired)
}

// jwtGate builds the route middleware that verifies bearer tokens and stores
// the verified claims on the context. Every rejection names the rule that
// failed: missing header, malformed header, expired token or invalid token.
func jwtGate(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  jwtService.Secret(),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		SuccessHandler: func(c echo.Context) {
			if token, ok := c.Get("user").(*jwt.Token); ok {
				if claims, ok := token.Claims.(*auth.Claims); ok {
					auth.SetIdentity(c, claims)
				}
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			var message string
			switch {
			case strings.TrimSpace(header) == "":
				message = "Authorization header missing"
			case !strings.HasPrefix(header, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")) == "":
				message = "Malformed authorization header"
			case errors.Is(err, jwt.ErrTokenExpired):
				message = "Token has expired"
			default:
				message = "Invalid token"
			}
			slog.Warn("request rejected by auth gate",
				"reason", message,
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"error", err)
			return errs.Wrap(errs.KindUnauthorized, message, err)
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// newHTTPErrorHandler builds the terminal error handler that renders every
// error as a response envelope. Classified errors carry their own status and
// message, echo errors (unknown route, wrong method, bind failures) pass
// through with theirs, and anything else is an internal error whose detail is
// exposed only in development.
func newHTTPErrorHandler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"

		var (
			domainErr *errs.Error
			valErrs   validator.ValidationErrors
			httpErr   *echo.HTTPError
		)
		switch {
		case errors.As(err, &domainErr):
			status = errs.StatusOf(domainErr)
			message = domainErr.Message
		case errors.As(err, &valErrs):
			status = http.StatusBadRequest
			message = validationMessage(valErrs)
		case errors.As(err, &httpErr):
			status = httpErr.Code
			message = httpMessage(httpErr)
		}

		if status >= http.StatusInternalServerError {
			slog.Error("request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"error", err)
			if development {
				message = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, handler.Envelope{Success: false, Message: message, Data: nil})
	}
}

// validationMessage renders the first field failure in client terms.
func validationMessage(fieldErrs validator.ValidationErrors) string {
	if len(fieldErrs) == 0 {
		return "Validation failed"
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field %s is required", field)
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("Field %s must be at least %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("Field %s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("Field %s is invalid", field)
	}
}

func httpMessage(httpErr *echo.HTTPError) string {
	switch m := httpErr.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	default:
		return http.StatusText(httpErr.Code)
	}
}
