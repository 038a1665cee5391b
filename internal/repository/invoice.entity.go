package repository

import (
	"github.com/acolin/asso-ledger/internal/model"
	"github.com/acolin/asso-ledger/pkg/pg"
)

type InvoiceEntity struct {
	ID          int64  `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	EntryID     int64  `db:"entry_id"     gorm:"column:entry_id;not null;index"`
	FileName    string `db:"file_name"    gorm:"column:file_name;not null"`
	ContentType string `db:"content_type" gorm:"column:content_type;not null"`
	Size        int64  `db:"size"         gorm:"column:size;not null"`
	ObjectKey   string `db:"object_key"   gorm:"column:object_key;not null;uniqueIndex"`
	CreatedBy   int64  `db:"created_by"   gorm:"column:created_by;not null"`
	pg.Audit
}

func (InvoiceEntity) TableName() string {
	return "invoices"
}

func toInvoiceEntity(m *model.Invoice) *InvoiceEntity {
	if m == nil {
		return nil
	}
	return &InvoiceEntity{
		ID:          m.ID,
		EntryID:     m.EntryID,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Size:        m.Size,
		ObjectKey:   m.ObjectKey,
		CreatedBy:   m.CreatedBy,
	}
}

func toInvoiceModel(e *InvoiceEntity) *model.Invoice {
	if e == nil {
		return nil
	}
	return &model.Invoice{
		ID:          e.ID,
		EntryID:     e.EntryID,
		FileName:    e.FileName,
		ContentType: e.ContentType,
		Size:        e.Size,
		ObjectKey:   e.ObjectKey,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toInvoiceModels(entities []*InvoiceEntity) []*model.Invoice {
	if entities == nil {
		return nil
	}
	models := make([]*model.Invoice, len(entities))
	for i, e := range entities {
		models[i] = toInvoiceModel(e)
	}
	return models
}
