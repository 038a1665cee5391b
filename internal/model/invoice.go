package model

import "time"

// Invoice is a facture attached to a ledger entry. The bytes live in the
// blob store; the row only keeps the object key and metadata.
type Invoice struct {
	ID          int64     `json:"id"`
	EntryID     int64     `json:"entry_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	ObjectKey   string    `json:"-"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
