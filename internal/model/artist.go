package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/acolin/asso-ledger/internal/apperr"
)

// Artist is a member the association books entries and transfers against.
type Artist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ArtistCreateRequest struct {
	Name  string
	Email string
}

func (p ArtistCreateRequest) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	return nil
}
