package model

import (
	"encoding/json"
	"log/slog"
	"time"
)

// Receipt is a scanned purchase receipt with OCR-extracted fields.
// Items holds the raw serialized OCR item list as produced by the
// extraction pipeline; it is stored opaquely and parsed on demand.
type Receipt struct {
	PurchaseDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ID           string
	StoreName    string
	Currency     string
	Items        string
	CreatedBy    string
	TotalAmount  float64
}

// Ref implements Entity.
func (r *Receipt) Ref() EntityRef {
	return EntityRef{Type: EntityReceipt, ID: r.ID}
}

// ParsedItems decodes the serialized OCR item list. Malformed payloads
// degrade to nil rather than failing: a broken extraction must never
// block context resolution.
func (r *Receipt) ParsedItems() []LineItem {
	if r.Items == "" {
		return nil
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(r.Items), &items); err != nil {
		slog.Warn("Failed to parse receipt items", "receipt_id", r.ID, "error", err)
		return nil
	}
	return items
}
