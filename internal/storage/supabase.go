package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	supastorage "github.com/supabase-community/storage-go"
)

// SupabaseStore keeps photos in a Supabase Storage bucket.
type SupabaseStore struct {
	client *supastorage.Client
	bucket string
}

func NewSupabaseStore(supabaseURL, serviceKey, bucket string) (*SupabaseStore, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := supastorage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &SupabaseStore{client: client, bucket: bucket}, nil
}

func (s *SupabaseStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	upsert := false
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), supastorage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return nil
}

func (s *SupabaseStore) Get(ctx context.Context, key string) ([]byte, string, error) {
	data, err := s.client.DownloadFile(s.bucket, key)
	if err != nil {
		// storage-go surfaces missing objects only through the error message.
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "not_found") || strings.Contains(msg, "not found") || strings.Contains(msg, "404") {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, "", fmt.Errorf("failed to download object %s: %w", key, err)
	}

	// Supabase does not return the stored content type on download;
	// callers fall back to application/octet-stream.
	return data, "", nil
}
