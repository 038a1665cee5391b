package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acolin/asso-ledger/internal/apperr"
)

// Transfer is a paired debit+credit representing money moved between two
// accounts. The two entries and the transfer row share a lifecycle: they are
// created, updated, and deleted together.
type Transfer struct {
	ID            int64           `json:"id"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Source        AccountRef      `json:"source"`
	Destination   AccountRef      `json:"destination"`
	DebitEntryID  int64           `json:"debit_entry_id"`
	CreditEntryID int64           `json:"credit_entry_id"`
	CreatedBy     int64           `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Display names resolved at read time, never stored.
	SourceName      string `json:"source_name,omitempty"`
	DestinationName string `json:"destination_name,omitempty"`
}

// TransferCreateRequest is the input for creating or updating a transfer.
type TransferCreateRequest struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Source      AccountRef
	Destination AccountRef
}

func (p TransferCreateRequest) Validate() error {
	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperr.ErrValidation)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperr.ErrValidation)
	}
	if err := p.Source.Validate(); err != nil {
		return err
	}
	if err := p.Destination.Validate(); err != nil {
		return err
	}
	if p.Source.Equal(p.Destination) {
		return fmt.Errorf("%w: source and destination must be different accounts", apperr.ErrValidation)
	}
	return nil
}
