package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/service"
)

type GalleryHandler struct {
	galleryService *service.GalleryService
}

func NewGalleryHandler(galleryService *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// UploadPhoto handles POST /api/gallery/upload (multipart: file, eventId,
// userId). Every failure maps to a 400 with the error message.
func (h *GalleryHandler) UploadPhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("file is required"))
	}

	eventID := c.FormValue("eventId")
	userID := c.FormValue("userId")
	declaredLength := int64(c.Request().Header.ContentLength())

	response, err := h.galleryService.UploadPhoto(c.Context(), eventID, userID, file, declaredLength)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetEventPhotos handles GET /api/gallery/event/:eventId.
func (h *GalleryHandler) GetEventPhotos(c *fiber.Ctx) error {
	eventID := c.Params("eventId")
	if eventID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("eventId is required"))
	}

	photos, err := h.galleryService.GetEventPhotos(eventID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{
		"items": photos,
		"count": len(photos),
	})
}

func (h *GalleryHandler) DeletePhoto(c *fiber.Ctx) error {
	photoID := c.Params("photoId")

	if err := h.galleryService.DeletePhoto(c.Context(), photoID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"message": "photo deleted"})
}

func (h *GalleryHandler) LikePhoto(c *fiber.Ctx) error {
	photoID := c.Params("photoId")

	if err := h.galleryService.LikePhoto(photoID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(fiber.Map{"message": "like recorded"})
}
