package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// ObjectStore is the blob store the order photos live in. Put must tag the
// object with its content type so Get can report it back.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get returns the object bytes and its stored content type.
	// Returns ErrNotFound (possibly wrapped) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, string, error)
}

const keyPrefix = "uploads"

var unsafeChars = regexp.MustCompile(`[^\w.\-]+`)

// BuildKey generates a fresh storage key for an uploaded photo:
// uploads/<YYYY-MM-DD>/<uuid>-<sanitized filename>. Keys are never reused;
// the layout is persisted data and must stay stable.
func BuildKey(filename string) string {
	return fmt.Sprintf("%s/%s/%s-%s",
		keyPrefix,
		time.Now().UTC().Format("2006-01-02"),
		uuid.New().String(),
		SanitizeFilename(filename),
	)
}

// SanitizeFilename collapses every run of characters outside [A-Za-z0-9_.-]
// into a single underscore. An empty name falls back to "file".
func SanitizeFilename(name string) string {
	if name == "" {
		return "file"
	}
	return unsafeChars.ReplaceAllString(name, "_")
}
