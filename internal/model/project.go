package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/acolin/asso-ledger/internal/apperr"
)

// Project is a production or event the association tracks money against.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProjectCreateRequest struct {
	Name        string
	Description string
}

func (p ProjectCreateRequest) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	return nil
}
