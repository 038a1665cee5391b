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

type ArtistRepository struct {
	*pg.DB
}

func NewArtistRepository(db *pg.DB) *ArtistRepository {
	return &ArtistRepository{
		db,
	}
}

func (r *ArtistRepository) Create(ctx context.Context, artist *model.Artist) (*model.Artist, error) {
	entity := toArtistEntity(artist)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toArtistModel(entity), nil
}

func (r *ArtistRepository) Get(ctx context.Context, id int64) (*model.Artist, error) {
	var entity ArtistEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: artist %d", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return toArtistModel(&entity), nil
}

func (r *ArtistRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var total int64
	if err := r.Read(ctx).Model(&ArtistEntity{}).Where("id = ?", id).Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *ArtistRepository) Update(ctx context.Context, artist *model.Artist) error {
	result := r.Write(ctx).
		Model(&ArtistEntity{}).
		Where("id = ?", artist.ID).
		Updates(map[string]interface{}{
			"name":  artist.Name,
			"email": artist.Email,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: artist %d", apperr.ErrNotFound, artist.ID)
	}
	return nil
}

func (r *ArtistRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).Where("id = ?", id).Delete(&ArtistEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: artist %d", apperr.ErrNotFound, id)
	}
	return nil
}

func (r *ArtistRepository) List(ctx context.Context) ([]*model.Artist, error) {
	var entities []*ArtistEntity
	if err := r.Read(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toArtistModels(entities), nil
}
