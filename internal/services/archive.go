package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"giftcard-backend/internal/models"
	"giftcard-backend/internal/storage"

	"golang.org/x/sync/errgroup"
)

// OrderReader loads existing order rows.
type OrderReader interface {
	GetOrder(ctx context.Context, id string) (*models.Order, error)
}

// ArchiveService packages all photos of one order into a ZIP. It performs
// no writes.
type ArchiveService struct {
	orders  OrderReader
	objects storage.ObjectStore
}

func NewArchiveService(orders OrderReader, objects storage.ObjectStore) *ArchiveService {
	return &ArchiveService{
		orders:  orders,
		objects: objects,
	}
}

// Archive is one assembled ZIP. Missing lists the storage keys of manifest
// entries whose objects were gone from the store and were omitted.
type Archive struct {
	OrderName string
	Data      []byte
	Missing   []string
}

// Build fetches every photo of the order concurrently and encodes the
// results into a ZIP in manifest order.
//
// Retrievals are joined positionally, not by completion time, so the
// archive's internal order always matches the manifest regardless of which
// fetch finishes first. Objects missing from the store are omitted from
// the archive rather than failing it.
func (s *ArchiveService) Build(ctx context.Context, orderID string) (*Archive, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	entries, err := order.Manifest()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoPhotos
	}

	// Fan out one fetch per manifest entry into a fixed slot per position.
	slots := make([][]byte, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			data, _, err := s.objects.Get(gctx, entry.Key)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil
				}
				return fmt.Errorf("failed to fetch %s: %w", entry.Key, err)
			}
			slots[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	archive := &Archive{OrderName: order.Name}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, entry := range entries {
		if slots[i] == nil {
			log.Printf("order %s: object %s missing from store, omitting from archive", order.ID, entry.Key)
			archive.Missing = append(archive.Missing, entry.Key)
			continue
		}

		name := entry.Filename
		if name == "" {
			name = fmt.Sprintf("photo-%d.jpg", i+1)
		}
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := w.Write(slots[i]); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	archive.Data = buf.Bytes()
	return archive, nil
}
