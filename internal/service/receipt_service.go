package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/repository/storage"
	"github.com/centavo-app/centavo-backend/internal/websocket"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	MaxReceiptSize   = 5 * 1024 * 1024 // 5MB
	MinReceiptWidth  = 50
	MinReceiptHeight = 50
	ThumbnailWidth   = 200
	JPEGQuality      = 85

	presignedURLExpiry = 15 * time.Minute
)

var (
	ErrReceiptTooLarge          = errors.New("file too large. Maximum size is 5MB")
	ErrReceiptInvalidFormat     = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrReceiptTooSmall          = errors.New("image too small. Minimum 50x50 pixels")
	ErrReceiptInvalidImageData  = errors.New("invalid image data")
	ErrReceiptStorageNotEnabled = errors.New("receipt storage not configured")
)

// AllowedReceiptExtensions maps extensions to content types
var AllowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ReceiptView is a receipt with presigned download URLs
type ReceiptView struct {
	*domain.Receipt
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// ReceiptService handles receipt image processing and storage
type ReceiptService struct {
	receiptRepo domain.ReceiptRepository
	expenseRepo domain.ExpenseRepository
	store       storage.ReceiptStore
	publisher   websocket.EventPublisher
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(receiptRepo domain.ReceiptRepository, expenseRepo domain.ExpenseRepository, store storage.ReceiptStore, publisher websocket.EventPublisher) *ReceiptService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &ReceiptService{
		receiptRepo: receiptRepo,
		expenseRepo: expenseRepo,
		store:       store,
		publisher:   publisher,
	}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured).
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.store != nil
}

// Upload validates a receipt image, generates a thumbnail, uploads both
// variants, and records the receipt. An existing receipt on the same expense
// is replaced.
func (s *ReceiptService) Upload(ctx context.Context, userID uuid.UUID, expenseID int32, data []byte, filename string) (*ReceiptView, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotEnabled
	}

	if _, err := s.expenseRepo.GetByID(userID, expenseID); err != nil {
		return nil, err
	}

	img, contentType, ext, err := validateAndDecodeReceipt(data, filename)
	if err != nil {
		return nil, err
	}

	if existing, err := s.receiptRepo.GetByExpense(userID, expenseID); err == nil {
		s.removeObjects(ctx, existing)
		if err := s.receiptRepo.Delete(userID, expenseID); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, domain.ErrReceiptNotFound) {
		return nil, err
	}

	objectPath := storage.ObjectPath(userID, expenseID, "original", ext)
	if _, err := s.store.Upload(ctx, objectPath, bytes.NewReader(data), contentType, int64(len(data))); err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	thumb := img
	if img.Bounds().Dx() > ThumbnailWidth {
		thumb = imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		_ = s.store.Delete(ctx, objectPath)
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	thumbnailPath := storage.ObjectPath(userID, expenseID, "thumb", ".jpg")
	if _, err := s.store.Upload(ctx, thumbnailPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
		_ = s.store.Delete(ctx, objectPath)
		return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	created, err := s.receiptRepo.Create(&domain.Receipt{
		UserID:        userID,
		ExpenseID:     expenseID,
		ObjectPath:    objectPath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		SizeBytes:     int64(len(data)),
	})
	if err != nil {
		_ = s.store.Delete(ctx, objectPath)
		_ = s.store.Delete(ctx, thumbnailPath)
		return nil, err
	}

	s.publisher.Publish(userID, websocket.ReceiptCreated(created))

	return s.buildView(ctx, created)
}

// Get returns the receipt attached to an expense with presigned URLs
func (s *ReceiptService) Get(ctx context.Context, userID uuid.UUID, expenseID int32) (*ReceiptView, error) {
	receipt, err := s.receiptRepo.GetByExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, receipt)
}

// Delete removes a receipt and its stored objects
func (s *ReceiptService) Delete(ctx context.Context, userID uuid.UUID, expenseID int32) error {
	receipt, err := s.receiptRepo.GetByExpense(userID, expenseID)
	if err != nil {
		return err
	}
	if err := s.receiptRepo.Delete(userID, expenseID); err != nil {
		return err
	}
	s.removeObjects(ctx, receipt)

	s.publisher.Publish(userID, websocket.ReceiptDeleted(map[string]int32{"expenseId": expenseID}))
	return nil
}

func (s *ReceiptService) buildView(ctx context.Context, receipt *domain.Receipt) (*ReceiptView, error) {
	if !s.IsEnabled() {
		return &ReceiptView{Receipt: receipt}, nil
	}

	url, err := s.store.GeneratePresignedURL(ctx, receipt.ObjectPath, presignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign receipt URL: %w", err)
	}
	thumbURL, err := s.store.GeneratePresignedURL(ctx, receipt.ThumbnailPath, presignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign thumbnail URL: %w", err)
	}

	return &ReceiptView{Receipt: receipt, URL: url, ThumbnailURL: thumbURL}, nil
}

// removeObjects deletes stored variants best effort
func (s *ReceiptService) removeObjects(ctx context.Context, receipt *domain.Receipt) {
	if !s.IsEnabled() {
		return
	}
	for _, objectPath := range []string{receipt.ObjectPath, receipt.ThumbnailPath} {
		if objectPath == "" {
			continue
		}
		if err := s.store.Delete(ctx, objectPath); err != nil {
			log.Warn().Str("path", objectPath).Err(err).Msg("failed to delete receipt object")
		}
	}
}

func validateAndDecodeReceipt(data []byte, filename string) (image.Image, string, string, error) {
	if len(data) > MaxReceiptSize {
		return nil, "", "", ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := AllowedReceiptExtensions[ext]
	if !ok {
		return nil, "", "", ErrReceiptInvalidFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", "", ErrReceiptInvalidImageData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinReceiptWidth || bounds.Dy() < MinReceiptHeight {
		return nil, "", "", ErrReceiptTooSmall
	}

	return img, contentType, ext, nil
}
