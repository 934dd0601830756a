package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Order is one customer submission. Rows are written once by the upload
// pipeline and never updated afterwards.
type Order struct {
	ID               string
	Name             string
	Email            string
	Phone            sql.NullString
	Occasion         string
	Style            string
	Recipient        string
	MainText         string
	DueDate          sql.NullString
	Notes            sql.NullString
	ConsentPortfolio bool
	PhotoCount       int
	PhotoEntries     string // JSON array of PhotoEntry, stored as a text blob
	CreatedAt        string // ISO-8601
}

// PhotoEntry describes one stored photo inside an order's manifest.
// The manifest preserves submission order; Key is the object-store path,
// Filename the user-supplied original name.
type PhotoEntry struct {
	Key      string `json:"key"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	Caption  string `json:"caption"`
}

// Manifest returns the order's decoded photo entries. An empty blob decodes
// to an empty manifest rather than an error.
func (o *Order) Manifest() ([]PhotoEntry, error) {
	if o.PhotoEntries == "" {
		return nil, nil
	}
	var entries []PhotoEntry
	if err := json.Unmarshal([]byte(o.PhotoEntries), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode photo entries for order %s: %w", o.ID, err)
	}
	return entries, nil
}

// EncodeManifest serializes photo entries for the photo_entries column.
func EncodeManifest(entries []PhotoEntry) (string, error) {
	if entries == nil {
		entries = []PhotoEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode photo entries: %w", err)
	}
	return string(data), nil
}
