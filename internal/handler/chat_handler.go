package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/celebra-app/celebra-backend/internal/middleware"
	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/service"
	"github.com/celebra-app/celebra-backend/pkg/utils"
)

type ChatHandler struct {
	chatService *service.ChatService
	validator   *utils.Validator
}

func NewChatHandler(chatService *service.ChatService, validator *utils.Validator) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validator:   validator,
	}
}

func (h *ChatHandler) GetConversations(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	conversations, err := h.chatService.GetConversations(principal.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"conversations": conversations})
}

func (h *ChatHandler) CreateChat(c *fiber.Ctx) error {
	var req models.CreateChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	principal := middleware.GetPrincipal(c)
	chat, err := h.chatService.GetOrCreateChat(principal.UserID, req.UserID2, req.EventID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"chatId": chat.ChatID, "chat": chat})
}

func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	messages, err := h.chatService.GetMessages(c.Params("chatId"), limit, c.Query("before"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"messages": messages})
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req models.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	principal := middleware.GetPrincipal(c)
	message, err := h.chatService.SendMessage(c.Params("chatId"), principal.UserID, req.Text)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"messageId": message.MessageID,
		"message":   message,
	})
}

func (h *ChatHandler) MarkAsRead(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	if err := h.chatService.MarkAsRead(c.Params("chatId"), principal.UserID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"message": "messages marked as read"})
}
