package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"specshare/internal/http/middleware"
	"specshare/internal/logger"
	"specshare/internal/service"
)

const (
	msgNotFound      = "not found"
	msgInternalError = "Internal server error"
)

// errorPayload is the body of every JSON error response.
type errorPayload struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response. message must be safe to expose.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Error: message})
}

// writeText writes a plain-text response.
func writeText(c *fiber.Ctx, status int, body string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(status).SendString(body)
}

// ErrorHandler returns the Fiber global error handler. It also runs for errors
// raised by the server before routing (oversized bodies), so it sets the CORS
// headers itself.
func ErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		middleware.SetCORSHeaders(c)

		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch {
		case status == fiber.StatusNotFound, status == fiber.StatusMethodNotAllowed:
			return writeError(c, fiber.StatusNotFound, msgNotFound)
		case status == fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, service.ErrContentTooLarge.Error())
		case status < fiber.StatusInternalServerError:
			return writeError(c, status, utils.StatusMessage(status))
		default:
			log.Error("unhandled_error",
				logger.String("request_id", middleware.GetRequestID(c)),
				logger.String("method", c.Method()),
				logger.String("path", c.Path()),
				logger.Err(err),
			)
			return writeError(c, fiber.StatusInternalServerError, msgInternalError)
		}
	}
}

// NotFound is the terminal catch-all for unmatched routes, including
// known paths requested with another method.
func NotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return writeError(c, fiber.StatusNotFound, msgNotFound)
	}
}
