package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/acolin/asso-ledger/internal/model"
	"github.com/acolin/asso-ledger/pkg/pg"
)

// EntryEntity is the storage shape of a ledger entry. The account reference
// is flattened into two nullable FK columns; both NULL means the
// association's own cash.
type EntryEntity struct {
	ID          int64           `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Date        time.Time       `db:"entry_date"  gorm:"column:entry_date;not null;index"`
	Description string          `db:"description" gorm:"column:description;not null"`
	Credit      decimal.Decimal `db:"credit"      gorm:"column:credit;type:decimal(20,4);not null;default:0"`
	Debit       decimal.Decimal `db:"debit"       gorm:"column:debit;type:decimal(20,4);not null;default:0"`
	ArtistID    *int64          `db:"artist_id"   gorm:"column:artist_id;index"`
	ProjectID   *int64          `db:"project_id"  gorm:"column:project_id;index"`
	Category    string          `db:"category"    gorm:"column:category;index"`
	TransferID  *int64          `db:"transfer_id" gorm:"column:transfer_id;index"`
	CreatedBy   int64           `db:"created_by"  gorm:"column:created_by;not null"`
	pg.Audit
}

func (EntryEntity) TableName() string {
	return "ledger_entries"
}

func toEntryEntity(m *model.Entry) *EntryEntity {
	if m == nil {
		return nil
	}
	artistID, projectID := m.Account.Columns()
	return &EntryEntity{
		ID:          m.ID,
		Date:        m.Date,
		Description: m.Description,
		Credit:      m.Credit,
		Debit:       m.Debit,
		ArtistID:    artistID,
		ProjectID:   projectID,
		Category:    string(m.Category),
		TransferID:  m.TransferID,
		CreatedBy:   m.CreatedBy,
	}
}

func toEntryModel(e *EntryEntity) *model.Entry {
	if e == nil {
		return nil
	}
	return &model.Entry{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		Credit:      e.Credit,
		Debit:       e.Debit,
		Account:     model.AccountRefFromColumns(e.ArtistID, e.ProjectID),
		Category:    model.Category(e.Category),
		TransferID:  e.TransferID,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEntryModels(entities []*EntryEntity) []*model.Entry {
	if entities == nil {
		return nil
	}
	models := make([]*model.Entry, len(entities))
	for i, e := range entities {
		models[i] = toEntryModel(e)
	}
	return models
}
