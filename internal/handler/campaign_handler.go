package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/Jose00521/Raffle-sub002/internal/allocation"
	"github.com/Jose00521/Raffle-sub002/internal/model"
	"github.com/Jose00521/Raffle-sub002/internal/numberspace"
	"github.com/Jose00521/Raffle-sub002/internal/service"
)

// CampaignServiceInterface defines the interface for campaign business logic.
type CampaignServiceInterface interface {
	Create(ctx context.Context, req *model.CreateCampaignRequest) (*model.CreateCampaignResponse, error)
	GetPrizes(ctx context.Context, code string) (*model.CampaignPrizesResponse, error)
}

// CampaignHandler handles HTTP requests for campaign operations.
type CampaignHandler struct {
	service   CampaignServiceInterface
	validator *validator.Validate
}

// NewCampaignHandler creates a new CampaignHandler with the given service and validator.
func NewCampaignHandler(svc CampaignServiceInterface, v *validator.Validate) *CampaignHandler {
	return &CampaignHandler{service: svc, validator: v}
}

// formatValidationError converts validator errors to stable API messages.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			tag := fe.Tag()

			switch field {
			case "Title":
				if tag == "required" {
					return "invalid request: title is required"
				}
				if tag == "notblank" {
					return "invalid request: title cannot be whitespace only"
				}
				return "invalid request: title is invalid"
			case "TotalNumbers":
				if tag == "required" {
					return "invalid request: total_numbers is required"
				}
				if tag == "gte" {
					return "invalid request: total_numbers must be at least 1"
				}
				return "invalid request: total_numbers is invalid"
			case "CreatorCode":
				if tag == "required" {
					return "invalid request: creator_code is required"
				}
				return "invalid request: creator_code is invalid"
			case "Number":
				if tag == "ticketnumber" {
					return "invalid request: prize number must contain only digits"
				}
				return "invalid request: prize number is invalid"
			case "Type":
				return "invalid request: prize type must be money or item"
			default:
				if tag == "required" {
					return "invalid request: " + field + " is required"
				}
				if tag == "max" {
					return "invalid request: " + field + " exceeds maximum length"
				}
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// CreateCampaign handles POST /api/campaigns requests: creates the campaign,
// initializes its ticket space and commits the instant-prize allocation as
// one unit.
func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req model.CreateCampaignRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	resp, err := h.service.Create(c.Context(), &req)
	if err != nil {
		var oor *numberspace.OutOfRangeError
		var dup *allocation.DuplicateFixedNumberError
		var ref *service.ReferenceNotFoundError
		switch {
		case errors.As(err, &oor), errors.As(err, &dup),
			errors.Is(err, allocation.ErrInvalidPrizeEntry),
			errors.Is(err, service.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.As(err, &ref):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("creator_code", req.CreatorCode).
			Msg("failed to create campaign")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("campaign_code", resp.CampaignCode).
		Int("total_numbers", resp.TotalNumbers).
		Int("prize_count", len(resp.Prizes)).
		Int("warning_count", len(resp.Warnings)).
		Msg("campaign created")

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetCampaignPrizes handles GET /api/campaigns/:code/prizes requests to
// retrieve the committed assignment list.
func (h *CampaignHandler) GetCampaignPrizes(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request: campaign code is required",
		})
	}

	resp, err := h.service.GetPrizes(c.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "campaign not found"})
		}
		log.Error().Err(err).Str("campaign_code", code).Msg("failed to get campaign prizes")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(resp)
}
