package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"specshare/internal/http/middleware"
	"specshare/internal/logger"
	"specshare/internal/service"
)

const markdownContentType = "text/markdown; charset=utf-8"

// requestJSON matches object keys exactly: {"CONTENT": ...} carries no content.
var requestJSON = jsoniter.Config{CaseSensitive: true}.Froze()

type createSpecResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSpec stores a new spec and returns its id and share URL.
// publicURL, when set, replaces the request origin in the URL.
//
//	@Summary	Create a spec
//	@Tags		specs
//	@Accept		json
//	@Produce	json
//	@Param		body	body		service.CreateInput	true	"Spec content"
//	@Success	201		{object}	createSpecResponse
//	@Failure	400		{object}	errorPayload
//	@Failure	413		{object}	errorPayload
//	@Failure	500		{object}	errorPayload
//	@Router		/api/specs [post]
func CreateSpec(svc service.SpecService, log logger.Logger, publicURL string) fiber.Handler {
	publicURL = strings.TrimRight(publicURL, "/")

	return func(c *fiber.Ctx) error {
		// The body is parsed as JSON whatever the Content-Type says.
		var in service.CreateInput
		if err := requestJSON.Unmarshal(c.Body(), &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid JSON")
		}

		spec, err := svc.Create(c.UserContext(), in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrContentEmpty):
				return writeError(c, fiber.StatusBadRequest, err.Error())
			case errors.Is(err, service.ErrContentTooLarge):
				return writeError(c, fiber.StatusRequestEntityTooLarge, err.Error())
			default:
				log.Error("spec_create_failed",
					logger.String("request_id", middleware.GetRequestID(c)),
					logger.Err(err),
				)
				return writeError(c, fiber.StatusInternalServerError, "Failed to store spec")
			}
		}

		origin := publicURL
		if origin == "" {
			origin = c.BaseURL()
		}
		return c.Status(fiber.StatusCreated).JSON(createSpecResponse{
			ID:  spec.ID,
			URL: origin + "/s/" + spec.ID,
		})
	}
}

// GetSpecContent serves the raw markdown of a spec.
//
//	@Summary	Raw spec content
//	@Tags		specs
//	@Produce	plain
//	@Param		id	path		string	true	"Spec ID"
//	@Success	200	{string}	string
//	@Failure	404	{string}	string
//	@Router		/s/{id} [get]
func GetSpecContent(svc service.SpecService, log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		content, err := svc.Content(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeText(c, fiber.StatusNotFound, "Not found")
			}
			log.Error("spec_content_lookup_failed",
				logger.String("request_id", middleware.GetRequestID(c)),
				logger.String("spec_id", id),
				logger.Err(err),
			)
			return writeText(c, fiber.StatusInternalServerError, msgInternalError)
		}

		c.Set(fiber.HeaderContentType, markdownContentType)
		return c.Status(fiber.StatusOK).SendString(content)
	}
}

// GetSpec returns the full stored record as JSON.
//
//	@Summary	Get a spec
//	@Tags		specs
//	@Produce	json
//	@Param		id	path		string	true	"Spec ID"
//	@Success	200	{object}	model.Spec
//	@Failure	404	{object}	errorPayload
//	@Failure	500	{object}	errorPayload
//	@Router		/api/specs/{id} [get]
func GetSpec(svc service.SpecService, log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		spec, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, service.ErrNotFound.Error())
			}
			log.Error("spec_lookup_failed",
				logger.String("request_id", middleware.GetRequestID(c)),
				logger.String("spec_id", id),
				logger.Err(err),
			)
			return writeError(c, fiber.StatusInternalServerError, "Database error")
		}
		return c.JSON(spec)
	}
}
