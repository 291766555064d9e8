package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/repository"
	"github.com/celebra-app/celebra-backend/pkg/document"
	"github.com/celebra-app/celebra-backend/pkg/storage"
	"github.com/celebra-app/celebra-backend/pkg/utils"
)

const (
	// MaxUploadBytes caps uploads at 5 MiB, checked against the declared
	// size before any byte reaches storage.
	MaxUploadBytes = 5 << 20

	// EventPhotoListLimit caps the event gallery listing.
	EventPhotoListLimit = 200

	// objectKeyTokenLength sizes the random token in storage object keys.
	objectKeyTokenLength = 24
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type GalleryService struct {
	photos *repository.Repository[models.GalleryPhoto]
	blobs  storage.BlobStorage
	logger *zap.SugaredLogger
}

func NewGalleryService(
	photos *repository.Repository[models.GalleryPhoto],
	blobs storage.BlobStorage,
	logger *zap.SugaredLogger,
) *GalleryService {
	return &GalleryService{
		photos: photos,
		blobs:  blobs,
		logger: logger,
	}
}

// UploadPhoto validates the upload, stages it in a scoped temp file, pushes
// it to blob storage and persists the photo document. declaredLength is the
// request content length, used when the part carries no size of its own;
// actual bytes are not re-measured before upload.
func (s *GalleryService) UploadPhoto(ctx context.Context, eventID, userID string, file *multipart.FileHeader, declaredLength int64) (*models.UploadPhotoResponse, error) {
	if file == nil {
		return nil, errors.New("file is required")
	}

	if ok, msg := utils.ValidateRequiredFields(map[string]interface{}{
		"eventId": eventID,
		"userId":  userID,
	}, []string{"eventId", "userId"}); !ok {
		return nil, errors.New(msg)
	}

	if file.Filename == "" {
		return nil, errors.New("uploaded file has no filename")
	}

	size := file.Size
	if size <= 0 {
		size = declaredLength
	}
	if size > MaxUploadBytes {
		return nil, fmt.Errorf("file exceeds the %d byte limit", MaxUploadBytes)
	}

	mimeType := file.Header.Get("Content-Type")
	if !allowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("unsupported file type: %s", mimeType)
	}

	// The extension check is independent of the MIME check; the two do not
	// have to agree.
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}

	key := fmt.Sprintf("gallery/%s/%s/%s%s", eventID, userID, utils.GenerateRandomString(objectKeyTokenLength), ext)

	tmpPath, err := s.stageToTempFile(file)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	imageURL, err := s.blobs.Upload(ctx, tmpPath, key, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	photoID := uuid.NewString()
	photo := models.GalleryPhoto{
		PhotoID:   photoID,
		ImageURL:  imageURL,
		ObjectKey: key,
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: utils.FormatDatetime(time.Now()),
	}

	if _, err := s.photos.Create(photo, photoID); err != nil {
		// Compensating delete so the blob does not orphan.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Warnw("failed to clean up blob after store error", "key", key, "error", delErr)
		}
		return nil, err
	}

	s.logger.Infow("photo uploaded", "photoId", photoID, "eventId", eventID, "userId", userID, "key", key)

	return &models.UploadPhotoResponse{PhotoID: photoID, ImageURL: imageURL}, nil
}

func (s *GalleryService) stageToTempFile(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "gallery-upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	return tmp.Name(), nil
}

// GetEventPhotos lists an event's photos, newest first, capped at 200.
func (s *GalleryService) GetEventPhotos(eventID string) ([]models.GalleryPhoto, error) {
	if eventID == "" {
		return nil, errors.New("eventId is required")
	}
	return s.photos.Query(
		[]document.Filter{{Field: "eventId", Operator: document.OpEqual, Value: eventID}},
		"createdAt", true, EventPhotoListLimit,
	)
}

// DeletePhoto removes the blob first, then the document.
func (s *GalleryService) DeletePhoto(ctx context.Context, photoID string) error {
	photo, err := s.photos.Get(photoID)
	if err != nil {
		return err
	}
	if photo == nil {
		return errors.New("photo not found")
	}

	if err := s.blobs.Delete(ctx, photo.ObjectKey); err != nil {
		return fmt.Errorf("failed to delete from storage: %w", err)
	}

	return s.photos.Delete(photoID)
}

// LikePhoto bumps the likes counter. Read-modify-write; concurrent likes
// may lose increments, which matches the store's single-call semantics.
func (s *GalleryService) LikePhoto(photoID string) error {
	photo, err := s.photos.Get(photoID)
	if err != nil {
		return err
	}
	if photo == nil {
		return errors.New("photo not found")
	}
	return s.photos.Update(photoID, map[string]interface{}{"likes": photo.Likes + 1})
}
