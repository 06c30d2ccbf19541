package handler

import (
	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response shape every endpoint renders, success and
// error alike.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// respond writes a success envelope.
func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}
