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

type ProjectRepository struct {
	*pg.DB
}

func NewProjectRepository(db *pg.DB) *ProjectRepository {
	return &ProjectRepository{
		db,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	entity := toProjectEntity(project)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toProjectModel(entity), nil
}

func (r *ProjectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	var entity ProjectEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %d", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return toProjectModel(&entity), nil
}

func (r *ProjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var total int64
	if err := r.Read(ctx).Model(&ProjectEntity{}).Where("id = ?", id).Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	result := r.Write(ctx).
		Model(&ProjectEntity{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"name":        project.Name,
			"description": project.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: project %d", apperr.ErrNotFound, project.ID)
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).Where("id = ?", id).Delete(&ProjectEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: project %d", apperr.ErrNotFound, id)
	}
	return nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	var entities []*ProjectEntity
	if err := r.Read(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toProjectModels(entities), nil
}
