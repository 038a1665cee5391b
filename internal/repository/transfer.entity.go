package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/acolin/asso-ledger/internal/model"
	"github.com/acolin/asso-ledger/pkg/pg"
)

type TransferEntity struct {
	ID                   int64           `db:"id"                     gorm:"primaryKey;autoIncrement;column:id"`
	Date                 time.Time       `db:"transfer_date"          gorm:"column:transfer_date;not null;index"`
	Amount               decimal.Decimal `db:"amount"                 gorm:"column:amount;type:decimal(20,4);not null"`
	Description          string          `db:"description"            gorm:"column:description;not null"`
	SourceArtistID       *int64          `db:"source_artist_id"       gorm:"column:source_artist_id;index"`
	SourceProjectID      *int64          `db:"source_project_id"      gorm:"column:source_project_id;index"`
	DestinationArtistID  *int64          `db:"destination_artist_id"  gorm:"column:destination_artist_id;index"`
	DestinationProjectID *int64          `db:"destination_project_id" gorm:"column:destination_project_id;index"`
	DebitEntryID         int64           `db:"debit_entry_id"         gorm:"column:debit_entry_id;not null;uniqueIndex"`
	CreditEntryID        int64           `db:"credit_entry_id"        gorm:"column:credit_entry_id;not null;uniqueIndex"`
	CreatedBy            int64           `db:"created_by"             gorm:"column:created_by;not null"`
	pg.Audit
}

func (TransferEntity) TableName() string {
	return "transfers"
}

// TransferWithNamesEntity is the read shape of a transfer list row: the
// transfer columns plus display names resolved by joining artists/projects.
type TransferWithNamesEntity struct {
	TransferEntity
	SourceName      string `gorm:"column:source_name"`
	DestinationName string `gorm:"column:destination_name"`
}

func toTransferEntity(m *model.Transfer) *TransferEntity {
	if m == nil {
		return nil
	}
	srcArtist, srcProject := m.Source.Columns()
	dstArtist, dstProject := m.Destination.Columns()
	return &TransferEntity{
		ID:                   m.ID,
		Date:                 m.Date,
		Amount:               m.Amount,
		Description:          m.Description,
		SourceArtistID:       srcArtist,
		SourceProjectID:      srcProject,
		DestinationArtistID:  dstArtist,
		DestinationProjectID: dstProject,
		DebitEntryID:         m.DebitEntryID,
		CreditEntryID:        m.CreditEntryID,
		CreatedBy:            m.CreatedBy,
	}
}

func toTransferModel(e *TransferEntity) *model.Transfer {
	if e == nil {
		return nil
	}
	return &model.Transfer{
		ID:            e.ID,
		Date:          e.Date,
		Amount:        e.Amount,
		Description:   e.Description,
		Source:        model.AccountRefFromColumns(e.SourceArtistID, e.SourceProjectID),
		Destination:   model.AccountRefFromColumns(e.DestinationArtistID, e.DestinationProjectID),
		DebitEntryID:  e.DebitEntryID,
		CreditEntryID: e.CreditEntryID,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toTransferModelWithNames(e *TransferWithNamesEntity) *model.Transfer {
	if e == nil {
		return nil
	}
	m := toTransferModel(&e.TransferEntity)
	m.SourceName = e.SourceName
	m.DestinationName = e.DestinationName
	return m
}

func toTransferModelsWithNames(entities []*TransferWithNamesEntity) []*model.Transfer {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transfer, len(entities))
	for i, e := range entities {
		models[i] = toTransferModelWithNames(e)
	}
	return models
}
