package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acolin/asso-ledger/internal/apperr"
)

// Category labels a ledger entry. CategoryTransferInternal is reserved for
// the two legs of an internal transfer.
type Category string

const (
	CategoryCachet           Category = "cachet"
	CategorySubvention       Category = "subvention"
	CategoryDon              Category = "don"
	CategoryBilletterie      Category = "billetterie"
	CategoryMateriel         Category = "materiel"
	CategoryTransport        Category = "transport"
	CategoryLocation         Category = "location"
	CategoryFraisBancaires   Category = "frais_bancaires"
	CategoryAutre            Category = "autre"
	CategoryTransferInternal Category = "transfer_internal"
)

var validCategories = map[Category]struct{}{
	CategoryCachet:           {},
	CategorySubvention:       {},
	CategoryDon:              {},
	CategoryBilletterie:      {},
	CategoryMateriel:         {},
	CategoryTransport:        {},
	CategoryLocation:         {},
	CategoryFraisBancaires:   {},
	CategoryAutre:            {},
	CategoryTransferInternal: {},
}

func (c Category) Valid() bool {
	_, ok := validCategories[c]
	return ok
}

// Entry is a single dated credit-or-debit record. At most one of Credit and
// Debit is nonzero. TransferID is set when the entry is one leg of an
// internal transfer; such entries are only mutated through the transfer
// coordinator.
type Entry struct {
	ID          int64           `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Credit      decimal.Decimal `json:"credit"`
	Debit       decimal.Decimal `json:"debit"`
	Account     AccountRef      `json:"account"`
	Category    Category        `json:"category,omitempty"`
	TransferID  *int64          `json:"transfer_id,omitempty"`
	CreatedBy   int64           `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EntryCreateRequest is the input for recording a plain (non-transfer)
// credit or debit.
type EntryCreateRequest struct {
	Date        time.Time
	Description string
	Credit      decimal.Decimal
	Debit       decimal.Decimal
	Account     AccountRef
	Category    Category
	PayeeHint   string
}

func (p EntryCreateRequest) Validate() error {
	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperr.ErrValidation)
	}
	if p.Credit.IsNegative() || p.Debit.IsNegative() {
		return fmt.Errorf("%w: amounts must be non-negative", apperr.ErrValidation)
	}
	creditSet := p.Credit.IsPositive()
	debitSet := p.Debit.IsPositive()
	if creditSet && debitSet {
		return fmt.Errorf("%w: an entry is either a credit or a debit, not both", apperr.ErrValidation)
	}
	if !creditSet && !debitSet {
		return fmt.Errorf("%w: one of credit or debit must be positive", apperr.ErrValidation)
	}
	if p.Category != "" && !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", apperr.ErrValidation, p.Category)
	}
	if p.Category == CategoryTransferInternal {
		return fmt.Errorf("%w: %s entries are created through the transfer API", apperr.ErrValidation, CategoryTransferInternal)
	}
	return p.Account.Validate()
}

// EntryUpdateRequest carries the mutable fields of an entry. Entries linked
// to a transfer reject direct updates.
type EntryUpdateRequest = EntryCreateRequest

// EntryFilter controls List queries.
type EntryFilter struct {
	Account  *AccountRef
	Category *Category
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
	Desc     bool
}
