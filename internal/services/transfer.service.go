package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
	"github.com/acolin/asso-ledger/pkg/logger"
	"github.com/acolin/asso-ledger/pkg/prom"
)

type TransferRepository interface {
	Create(ctx context.Context, transfer *model.Transfer) (*model.Transfer, error)
	Get(ctx context.Context, id int64) (*model.Transfer, error)
	Update(ctx context.Context, transfer *model.Transfer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*model.Transfer, error)
}

type TransferEntryRepository interface {
	Create(ctx context.Context, entry *model.Entry) (*model.Entry, error)
	Update(ctx context.Context, entry *model.Entry) error
	Delete(ctx context.Context, id int64) error
	LinkTransfer(ctx context.Context, entryIDs []int64, transferID int64) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AccountResolver interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// TransferService coordinates the transfer row and its two ledger legs. Every
// mutation runs inside one database transaction so the pair can never drift
// apart: either the debit, the credit, and the transfer all land, or none do.
type TransferService struct {
	transferRepo TransferRepository
	entryRepo    TransferEntryRepository
	artists      AccountResolver
	projects     AccountResolver
}

func NewTransferService(transferRepo TransferRepository, entryRepo TransferEntryRepository, artists, projects AccountResolver) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		entryRepo:    entryRepo,
		artists:      artists,
		projects:     projects,
	}
}

func (s *TransferService) Create(ctx context.Context, actor model.Actor, p model.TransferCreateRequest) (*model.Transfer, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot create transfers", apperr.ErrPermission, actor.Role)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveEndpoint(ctx, p.Source); err != nil {
		return nil, err
	}
	if err := s.resolveEndpoint(ctx, p.Destination); err != nil {
		return nil, err
	}

	var created *model.Transfer
	err := s.entryRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		debit, err := s.entryRepo.Create(ctx, &model.Entry{
			Date:        p.Date,
			Description: p.Description,
			Debit:       p.Amount,
			Account:     p.Source,
			Category:    model.CategoryTransferInternal,
			CreatedBy:   actor.ProfileID,
		})
		if err != nil {
			return fmt.Errorf("create debit leg: %w", err)
		}

		credit, err := s.entryRepo.Create(ctx, &model.Entry{
			Date:        p.Date,
			Description: p.Description,
			Credit:      p.Amount,
			Account:     p.Destination,
			Category:    model.CategoryTransferInternal,
			CreatedBy:   actor.ProfileID,
		})
		if err != nil {
			return fmt.Errorf("create credit leg: %w", err)
		}

		created, err = s.transferRepo.Create(ctx, &model.Transfer{
			Date:          p.Date,
			Amount:        p.Amount,
			Description:   p.Description,
			Source:        p.Source,
			Destination:   p.Destination,
			DebitEntryID:  debit.ID,
			CreditEntryID: credit.ID,
			CreatedBy:     actor.ProfileID,
		})
		if err != nil {
			return fmt.Errorf("create transfer: %w", err)
		}

		return s.entryRepo.LinkTransfer(ctx, []int64{debit.ID, credit.ID}, created.ID)
	})
	prom.ObserveTransferOp("create", err)
	if err != nil {
		s.logIfIntegrity("create", err)
		return nil, err
	}

	// re-read for endpoint display names
	return s.transferRepo.Get(ctx, created.ID)
}

// Update rewrites the transfer and both legs together. The three rows keep
// their ids; only dates, amounts, descriptions, and endpoints move.
func (s *TransferService) Update(ctx context.Context, actor model.Actor, id int64, p model.TransferCreateRequest) (*model.Transfer, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot update transfers", apperr.ErrPermission, actor.Role)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveEndpoint(ctx, p.Source); err != nil {
		return nil, err
	}
	if err := s.resolveEndpoint(ctx, p.Destination); err != nil {
		return nil, err
	}

	err := s.entryRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.transferRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		transferID := current.ID
		if err := s.entryRepo.Update(ctx, &model.Entry{
			ID:          current.DebitEntryID,
			Date:        p.Date,
			Description: p.Description,
			Debit:       p.Amount,
			Account:     p.Source,
			Category:    model.CategoryTransferInternal,
			TransferID:  &transferID,
		}); err != nil {
			return fmt.Errorf("update debit leg: %w", err)
		}
		if err := s.entryRepo.Update(ctx, &model.Entry{
			ID:          current.CreditEntryID,
			Date:        p.Date,
			Description: p.Description,
			Credit:      p.Amount,
			Account:     p.Destination,
			Category:    model.CategoryTransferInternal,
			TransferID:  &transferID,
		}); err != nil {
			return fmt.Errorf("update credit leg: %w", err)
		}

		current.Date = p.Date
		current.Amount = p.Amount
		current.Description = p.Description
		current.Source = p.Source
		current.Destination = p.Destination
		return s.transferRepo.Update(ctx, current)
	})
	prom.ObserveTransferOp("update", err)
	if err != nil {
		s.logIfIntegrity("update", err)
		return nil, err
	}

	return s.transferRepo.Get(ctx, id)
}

// Delete removes the transfer and both legs. Partial deletion is not a state
// this can leave behind.
func (s *TransferService) Delete(ctx context.Context, actor model.Actor, id int64) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins delete transfers", apperr.ErrPermission)
	}

	err := s.entryRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.transferRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		// legs first: they hold the FK on the transfer row
		if err := s.entryRepo.Delete(ctx, current.DebitEntryID); err != nil {
			return fmt.Errorf("delete debit leg: %w", err)
		}
		if err := s.entryRepo.Delete(ctx, current.CreditEntryID); err != nil {
			return fmt.Errorf("delete credit leg: %w", err)
		}
		return s.transferRepo.Delete(ctx, current.ID)
	})
	prom.ObserveTransferOp("delete", err)
	if err != nil {
		s.logIfIntegrity("delete", err)
	}
	return err
}

func (s *TransferService) Get(ctx context.Context, id int64) (*model.Transfer, error) {
	return s.transferRepo.Get(ctx, id)
}

func (s *TransferService) List(ctx context.Context) ([]*model.Transfer, error) {
	return s.transferRepo.List(ctx)
}

func (s *TransferService) resolveEndpoint(ctx context.Context, ref model.AccountRef) error {
	var (
		resolver AccountResolver
		kind     model.AccountKind
	)
	switch ref.Kind {
	case model.AccountArtist:
		resolver, kind = s.artists, model.AccountArtist
	case model.AccountProject:
		resolver, kind = s.projects, model.AccountProject
	default:
		return nil // the association always exists
	}
	ok, err := resolver.Exists(ctx, ref.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %d", apperr.ErrNotFound, kind, ref.ID)
	}
	return nil
}

func (s *TransferService) logIfIntegrity(op string, err error) {
	if errors.Is(err, apperr.ErrIntegrity) {
		logger.Error("transfer integrity violation, contact an administrator",
			"op", op,
			"error", err)
	}
}
