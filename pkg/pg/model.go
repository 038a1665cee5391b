package pg

import "time"

// Audit carries the bookkeeping columns shared by every table.
type Audit struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
