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

type TransferRepository struct {
	*pg.DB
}

func NewTransferRepository(db *pg.DB) *TransferRepository {
	return &TransferRepository{
		db,
	}
}

func (r *TransferRepository) Create(ctx context.Context, transfer *model.Transfer) (*model.Transfer, error) {
	entity := toTransferEntity(transfer)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransferModel(entity), nil
}

func (r *TransferRepository) Get(ctx context.Context, id int64) (*model.Transfer, error) {
	var entity TransferWithNamesEntity
	err := r.withNamesQuery(ctx).Where("t.id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transfer %d", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return toTransferModelWithNames(&entity), nil
}

// Update rewrites the transfer row in place; the entry ids never change.
func (r *TransferRepository) Update(ctx context.Context, transfer *model.Transfer) error {
	srcArtist, srcProject := transfer.Source.Columns()
	dstArtist, dstProject := transfer.Destination.Columns()
	result := r.Write(ctx).
		Model(&TransferEntity{}).
		Where("id = ?", transfer.ID).
		Updates(map[string]interface{}{
			"transfer_date":          transfer.Date,
			"amount":                 transfer.Amount,
			"description":            transfer.Description,
			"source_artist_id":       srcArtist,
			"source_project_id":      srcProject,
			"destination_artist_id":  dstArtist,
			"destination_project_id": dstProject,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: transfer %d", apperr.ErrNotFound, transfer.ID)
	}
	return nil
}

func (r *TransferRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).Where("id = ?", id).Delete(&TransferEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: transfer %d", apperr.ErrNotFound, id)
	}
	return nil
}

// List returns every transfer newest date first, with endpoint display names
// resolved.
func (r *TransferRepository) List(ctx context.Context) ([]*model.Transfer, error) {
	var entities []*TransferWithNamesEntity
	err := r.withNamesQuery(ctx).
		Order("t.transfer_date DESC, t.id DESC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toTransferModelsWithNames(entities), nil
}

// withNamesQuery joins artists and projects on both endpoints so a single
// select carries the display names. NULL on both FK columns is the
// association's own cash account.
func (r *TransferRepository) withNamesQuery(ctx context.Context) *gorm.DB {
	return r.Read(ctx).
		Table("transfers AS t").
		Select(`t.*,
            COALESCE(sa.name, sp.name, '` + model.AssociationLabel + `') AS source_name,
            COALESCE(da.name, dp.name, '` + model.AssociationLabel + `') AS destination_name`).
		Joins("LEFT JOIN artists AS sa ON sa.id = t.source_artist_id").
		Joins("LEFT JOIN projects AS sp ON sp.id = t.source_project_id").
		Joins("LEFT JOIN artists AS da ON da.id = t.destination_artist_id").
		Joins("LEFT JOIN projects AS dp ON dp.id = t.destination_project_id")
}
