package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
)

type EntryRepository interface {
	Create(ctx context.Context, entry *model.Entry) (*model.Entry, error)
	Get(ctx context.Context, id int64) (*model.Entry, error)
	Update(ctx context.Context, entry *model.Entry) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f model.EntryFilter) ([]*model.Entry, int64, error)
}

type Classifier interface {
	Classify(description, payeeHint string) model.Category
}

// EntryService manages plain ledger entries. Entries that belong to a
// transfer are read-only here: mutating a single leg would unbalance the
// pair, so those go through TransferService.
type EntryService struct {
	entryRepo  EntryRepository
	artists    AccountResolver
	projects   AccountResolver
	classifier Classifier
}

func NewEntryService(entryRepo EntryRepository, artists, projects AccountResolver, classifier Classifier) *EntryService {
	return &EntryService{
		entryRepo:  entryRepo,
		artists:    artists,
		projects:   projects,
		classifier: classifier,
	}
}

func (s *EntryService) Create(ctx context.Context, actor model.Actor, p model.EntryCreateRequest) (*model.Entry, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot create entries", apperr.ErrPermission, actor.Role)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveAccount(ctx, p.Account); err != nil {
		return nil, err
	}

	p.Description = strings.TrimSpace(p.Description)
	category := p.Category
	if category == "" && s.classifier != nil {
		category = s.classifier.Classify(p.Description, p.PayeeHint)
	}

	return s.entryRepo.Create(ctx, &model.Entry{
		Date:        p.Date,
		Description: p.Description,
		Credit:      p.Credit,
		Debit:       p.Debit,
		Account:     p.Account,
		Category:    category,
		CreatedBy:   actor.ProfileID,
	})
}

func (s *EntryService) Update(ctx context.Context, actor model.Actor, id int64, p model.EntryUpdateRequest) (*model.Entry, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot update entries", apperr.ErrPermission, actor.Role)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	current, err := s.entryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.TransferID != nil {
		return nil, fmt.Errorf("%w: entry %d belongs to transfer %d, edit the transfer instead",
			apperr.ErrValidation, id, *current.TransferID)
	}
	if err := s.resolveAccount(ctx, p.Account); err != nil {
		return nil, err
	}

	category := p.Category
	if category == "" {
		category = current.Category
	}

	current.Date = p.Date
	current.Description = strings.TrimSpace(p.Description)
	current.Credit = p.Credit
	current.Debit = p.Debit
	current.Account = p.Account
	current.Category = category
	if err := s.entryRepo.Update(ctx, current); err != nil {
		return nil, err
	}
	return s.entryRepo.Get(ctx, id)
}

func (s *EntryService) Delete(ctx context.Context, actor model.Actor, id int64) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins delete entries", apperr.ErrPermission)
	}

	current, err := s.entryRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.TransferID != nil {
		return fmt.Errorf("%w: entry %d belongs to transfer %d, delete the transfer instead",
			apperr.ErrValidation, id, *current.TransferID)
	}
	return s.entryRepo.Delete(ctx, id)
}

func (s *EntryService) Get(ctx context.Context, id int64) (*model.Entry, error) {
	return s.entryRepo.Get(ctx, id)
}

func (s *EntryService) List(ctx context.Context, f model.EntryFilter) ([]*model.Entry, int64, error) {
	return s.entryRepo.List(ctx, f)
}

func (s *EntryService) resolveAccount(ctx context.Context, ref model.AccountRef) error {
	var resolver AccountResolver
	switch ref.Kind {
	case model.AccountArtist:
		resolver = s.artists
	case model.AccountProject:
		resolver = s.projects
	default:
		return nil
	}
	ok, err := resolver.Exists(ctx, ref.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %d", apperr.ErrNotFound, ref.Kind, ref.ID)
	}
	return nil
}
