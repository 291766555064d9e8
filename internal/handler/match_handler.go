package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/celebra-app/celebra-backend/internal/middleware"
	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/service"
	"github.com/celebra-app/celebra-backend/pkg/utils"
)

const defaultPotentialMatchLimit = 10

type MatchHandler struct {
	matchService *service.MatchService
	validator    *utils.Validator
}

func NewMatchHandler(matchService *service.MatchService, validator *utils.Validator) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		validator:    validator,
	}
}

func (h *MatchHandler) GetPotentialMatches(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	limit := defaultPotentialMatchLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	users, err := h.matchService.GetPotentialMatches(c.Params("eventId"), principal.UserID, limit)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"users": users})
}

func (h *MatchHandler) Like(c *fiber.Ctx) error {
	var req models.LikeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	principal := middleware.GetPrincipal(c)
	response, err := h.matchService.Like(c.Params("eventId"), principal.UserID, req.TargetUserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(response)
}

func (h *MatchHandler) Pass(c *fiber.Ctx) error {
	var req models.LikeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	principal := middleware.GetPrincipal(c)
	if err := h.matchService.Pass(c.Params("eventId"), principal.UserID, req.TargetUserID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"message": "pass recorded"})
}

func (h *MatchHandler) GetMatches(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	matches, err := h.matchService.GetMatches(c.Params("eventId"), principal.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"matches": matches})
}
