package handler

import (
	"github.com/gofiber/fiber/v2"

	"specshare/internal/logger"
)

// NewConfig returns the Fiber settings the routes rely on: paths match with
// exact case and exact trailing slash, and errors render as JSON.
// A bodyLimit <= 0 keeps Fiber's default.
func NewConfig(log logger.Logger, bodyLimit int) fiber.Config {
	return fiber.Config{
		AppName:               "specshare",
		ErrorHandler:          ErrorHandler(log),
		BodyLimit:             bodyLimit,
		CaseSensitive:         true,
		StrictRouting:         true,
		DisableStartupMessage: true,
	}
}
