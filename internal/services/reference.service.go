package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
)

type ArtistRepository interface {
	Create(ctx context.Context, artist *model.Artist) (*model.Artist, error)
	Get(ctx context.Context, id int64) (*model.Artist, error)
	Update(ctx context.Context, artist *model.Artist) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*model.Artist, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) (*model.Project, error)
	Get(ctx context.Context, id int64) (*model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*model.Project, error)
}

type AccountUsageCounter interface {
	CountByAccount(ctx context.Context, account model.AccountRef) (int64, error)
}

// ArtistService manages the artist roster. Deleting an artist that still has
// ledger entries is refused; the books must be reassigned or emptied first.
type ArtistService struct {
	artistRepo ArtistRepository
	usage      AccountUsageCounter
}

func NewArtistService(artistRepo ArtistRepository, usage AccountUsageCounter) *ArtistService {
	return &ArtistService{
		artistRepo: artistRepo,
		usage:      usage,
	}
}

func (s *ArtistService) Create(ctx context.Context, actor model.Actor, p model.ArtistCreateRequest) (*model.Artist, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot create artists", apperr.ErrPermission, actor.Role)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.artistRepo.Create(ctx, &model.Artist{
		Name:  strings.TrimSpace(p.Name),
		Email: strings.TrimSpace(p.Email),
	})
}

func (s *ArtistService) Update(ctx context.Context, actor model.Actor, id int64, p model.ArtistCreateRequest) (*model.Artist, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot update artists", apperr.ErrPermission, actor.Role)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.artistRepo.Update(ctx, &model.Artist{
		ID:    id,
		Name:  strings.TrimSpace(p.Name),
		Email: strings.TrimSpace(p.Email),
	}); err != nil {
		return nil, err
	}
	return s.artistRepo.Get(ctx, id)
}

func (s *ArtistService) Delete(ctx context.Context, actor model.Actor, id int64) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins delete artists", apperr.ErrPermission)
	}
	used, err := s.usage.CountByAccount(ctx, model.ArtistRef(id))
	if err != nil {
		return err
	}
	if used > 0 {
		return fmt.Errorf("%w: artist %d still has %d ledger entries", apperr.ErrValidation, id, used)
	}
	return s.artistRepo.Delete(ctx, id)
}

func (s *ArtistService) Get(ctx context.Context, id int64) (*model.Artist, error) {
	return s.artistRepo.Get(ctx, id)
}

func (s *ArtistService) List(ctx context.Context) ([]*model.Artist, error) {
	return s.artistRepo.List(ctx)
}

// ProjectService mirrors ArtistService for productions and events.
type ProjectService struct {
	projectRepo ProjectRepository
	usage       AccountUsageCounter
}

func NewProjectService(projectRepo ProjectRepository, usage AccountUsageCounter) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		usage:       usage,
	}
}

func (s *ProjectService) Create(ctx context.Context, actor model.Actor, p model.ProjectCreateRequest) (*model.Project, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot create projects", apperr.ErrPermission, actor.Role)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.projectRepo.Create(ctx, &model.Project{
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
	})
}

func (s *ProjectService) Update(ctx context.Context, actor model.Actor, id int64, p model.ProjectCreateRequest) (*model.Project, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot update projects", apperr.ErrPermission, actor.Role)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Update(ctx, &model.Project{
		ID:          id,
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
	}); err != nil {
		return nil, err
	}
	return s.projectRepo.Get(ctx, id)
}

func (s *ProjectService) Delete(ctx context.Context, actor model.Actor, id int64) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins delete projects", apperr.ErrPermission)
	}
	used, err := s.usage.CountByAccount(ctx, model.ProjectRef(id))
	if err != nil {
		return err
	}
	if used > 0 {
		return fmt.Errorf("%w: project %d still has %d ledger entries", apperr.ErrValidation, id, used)
	}
	return s.projectRepo.Delete(ctx, id)
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	return s.projectRepo.Get(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]*model.Project, error) {
	return s.projectRepo.List(ctx)
}
