package repository

import (
	"github.com/acolin/asso-ledger/internal/model"
	"github.com/acolin/asso-ledger/pkg/pg"
)

type ArtistEntity struct {
	ID    int64  `db:"id"    gorm:"primaryKey;autoIncrement;column:id"`
	Name  string `db:"name"  gorm:"column:name;not null;index"`
	Email string `db:"email" gorm:"column:email"`
	pg.Audit
}

func (ArtistEntity) TableName() string {
	return "artists"
}

type ProjectEntity struct {
	ID          int64  `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Name        string `db:"name"        gorm:"column:name;not null;index"`
	Description string `db:"description" gorm:"column:description"`
	pg.Audit
}

func (ProjectEntity) TableName() string {
	return "projects"
}

func toArtistEntity(m *model.Artist) *ArtistEntity {
	if m == nil {
		return nil
	}
	return &ArtistEntity{ID: m.ID, Name: m.Name, Email: m.Email}
}

func toArtistModel(e *ArtistEntity) *model.Artist {
	if e == nil {
		return nil
	}
	return &model.Artist{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toArtistModels(entities []*ArtistEntity) []*model.Artist {
	if entities == nil {
		return nil
	}
	models := make([]*model.Artist, len(entities))
	for i, e := range entities {
		models[i] = toArtistModel(e)
	}
	return models
}

func toProjectEntity(m *model.Project) *ProjectEntity {
	if m == nil {
		return nil
	}
	return &ProjectEntity{ID: m.ID, Name: m.Name, Description: m.Description}
}

func toProjectModel(e *ProjectEntity) *model.Project {
	if e == nil {
		return nil
	}
	return &model.Project{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toProjectModels(entities []*ProjectEntity) []*model.Project {
	if entities == nil {
		return nil
	}
	models := make([]*model.Project, len(entities))
	for i, e := range entities {
		models[i] = toProjectModel(e)
	}
	return models
}
