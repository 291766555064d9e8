package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/celebra-app/celebra-backend/internal/middleware"
	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/service"
	"github.com/celebra-app/celebra-backend/pkg/utils"
)

type EventHandler struct {
	eventService *service.EventService
	validator    *utils.Validator
}

func NewEventHandler(eventService *service.EventService, validator *utils.Validator) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator,
	}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	principal := middleware.GetPrincipal(c)
	event, err := h.eventService.CreateEvent(principal.UserID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"eventId": event.EventID,
		"event":   event,
	})
}

func (h *EventHandler) GetUserEvents(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	events, err := h.eventService.GetUserEvents(principal.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"events": events})
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.eventService.GetEvent(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"event": event})
}

func (h *EventHandler) GetTables(c *fiber.Ctx) error {
	tables, err := h.eventService.GetTables(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"tables": tables})
}

func (h *EventHandler) CreateTable(c *fiber.Ctx) error {
	var req models.CreateTableRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	table, err := h.eventService.CreateTable(c.Params("eventId"), req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"table": table, "message": "table created or updated"})
}

func (h *EventHandler) GetGuests(c *fiber.Ctx) error {
	guests, err := h.eventService.GetGuests(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"guests": guests})
}

func (h *EventHandler) InviteGuest(c *fiber.Ctx) error {
	var req models.InviteGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	guest, err := h.eventService.InviteGuest(c.Params("eventId"), req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"guest":   guest,
		"message": "invitation sent",
	})
}
