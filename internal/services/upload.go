package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"giftcard-backend/internal/models"
	"giftcard-backend/internal/notify"
	"giftcard-backend/internal/storage"

	"github.com/google/uuid"
)

// MaxPhotoBytes is the per-file upload cap.
const MaxPhotoBytes = 10 << 20 // 10 MiB

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/heic": true,
	"image/heif": true,
}

// OrderWriter persists new order rows.
type OrderWriter interface {
	InsertOrder(ctx context.Context, order *models.Order) error
}

// UploadService runs the order-submission pipeline: validate the form,
// store each photo, then persist one order row with the photo manifest.
type UploadService struct {
	objects  storage.ObjectStore
	orders   OrderWriter
	notifier *notify.Notifier
}

func NewUploadService(objects storage.ObjectStore, orders OrderWriter, notifier *notify.Notifier) *UploadService {
	return &UploadService{
		objects:  objects,
		orders:   orders,
		notifier: notifier,
	}
}

type SubmitResult struct {
	OrderID string
	Stored  int
}

// Submit validates a submission and writes its photos and order row.
//
// Photos are stored sequentially in submission order, before the metadata
// insert. A photo failing validation aborts the whole request, but photos
// stored in earlier iterations are not rolled back; the two stores are not
// written atomically and a crash can leave orphaned objects.
func (s *UploadService) Submit(ctx context.Context, sub *models.OrderSubmission) (*SubmitResult, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	entries := make([]models.PhotoEntry, 0, len(sub.Photos))
	for _, photo := range sub.Photos {
		// Not a real file payload; filter rather than fail.
		if photo.Filename == "" && len(photo.Data) == 0 {
			continue
		}
		if !allowedPhotoTypes[photo.ContentType] {
			return nil, validationErrorf("unsupported file type: %s", photo.ContentType)
		}
		if photo.Size > MaxPhotoBytes || int64(len(photo.Data)) > MaxPhotoBytes {
			return nil, validationErrorf("file exceeds %d MB limit: %s", MaxPhotoBytes>>20, photo.Filename)
		}

		key := storage.BuildKey(photo.Filename)
		if err := s.objects.Put(ctx, key, photo.Data, photo.ContentType); err != nil {
			return nil, fmt.Errorf("failed to store photo %s: %w", photo.Filename, err)
		}

		entries = append(entries, models.PhotoEntry{
			Key:      key,
			Filename: photo.Filename,
			Size:     int64(len(photo.Data)),
			Type:     photo.ContentType,
			Caption:  photo.Caption,
		})
	}

	if sub.PhotoCountHint > 0 && sub.PhotoCountHint != len(entries) {
		// The hint is informational only; mismatches are logged, not enforced.
		log.Printf("photo_count hint %d does not match %d stored photos", sub.PhotoCountHint, len(entries))
	}

	manifest, err := models.EncodeManifest(entries)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:               uuid.New().String(),
		Name:             sub.Name,
		Email:            sub.Email,
		Phone:            nullable(sub.Phone),
		Occasion:         sub.Occasion,
		Style:            sub.Style,
		Recipient:        sub.Recipient,
		MainText:         sub.MainText,
		DueDate:          nullable(sub.DueDate),
		Notes:            nullable(sub.Notes),
		ConsentPortfolio: sub.ConsentPortfolio,
		PhotoCount:       len(entries),
		PhotoEntries:     manifest,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.orders.InsertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.notifier.OrderCreated(order.ID, len(entries))

	return &SubmitResult{OrderID: order.ID, Stored: len(entries)}, nil
}

// validateSubmission trims and checks the required string fields. It runs
// before any photo is stored, so a rejected submission has no side effects.
func validateSubmission(sub *models.OrderSubmission) error {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Style = strings.TrimSpace(sub.Style)
	sub.Recipient = strings.TrimSpace(sub.Recipient)
	sub.MainText = strings.TrimSpace(sub.MainText)
	sub.Occasion = strings.TrimSpace(sub.Occasion)
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.DueDate = strings.TrimSpace(sub.DueDate)
	sub.Notes = strings.TrimSpace(sub.Notes)

	required := map[string]string{
		"name":      sub.Name,
		"email":     sub.Email,
		"style":     sub.Style,
		"recipient": sub.Recipient,
		"main_text": sub.MainText,
		"occasion":  sub.Occasion,
	}
	for field, value := range required {
		if value == "" {
			return validationErrorf("missing required field: %s", field)
		}
	}
	return nil
}

// nullable maps an absent or empty optional field to NULL, never to "".
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
