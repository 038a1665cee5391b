package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
	"github.com/acolin/asso-ledger/pkg/pg"
)

type InvoiceRepository struct {
	*pg.DB
}

func NewInvoiceRepository(db *pg.DB) *InvoiceRepository {
	return &InvoiceRepository{
		db,
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *model.Invoice) (*model.Invoice, error) {
	entity := toInvoiceEntity(invoice)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toInvoiceModel(entity), nil
}

func (r *InvoiceRepository) Get(ctx context.Context, id int64) (*model.Invoice, error) {
	var entity InvoiceEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %d", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return toInvoiceModel(&entity), nil
}

// List returns invoices, optionally scoped to one ledger entry.
func (r *InvoiceRepository) List(ctx context.Context, entryID *int64) ([]*model.Invoice, error) {
	q := r.Read(ctx).Model(&InvoiceEntity{})
	if entryID != nil {
		q = q.Where("entry_id = ?", *entryID)
	}
	var entities []*InvoiceEntity
	if err := q.Order("id DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toInvoiceModels(entities), nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).Where("id = ?", id).Delete(&InvoiceEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: invoice %d", apperr.ErrNotFound, id)
	}
	return nil
}
