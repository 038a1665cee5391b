package services

import (
	"context"
	"fmt"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
)

type BalanceRepository interface {
	BalanceByPeriod(ctx context.Context, f model.ReportFilter) ([]model.BalanceLine, error)
}

// ReportService computes balance summaries over the ledger. Reports read
// every entry, transfer legs included, so moving money between accounts
// never changes the association-wide total.
type ReportService struct {
	balanceRepo BalanceRepository
}

func NewReportService(balanceRepo BalanceRepository) *ReportService {
	return &ReportService{
		balanceRepo: balanceRepo,
	}
}

func (s *ReportService) Balance(ctx context.Context, f model.ReportFilter) ([]model.BalanceLine, error) {
	switch f.Granularity {
	case "":
		f.Granularity = model.GranularityMonth
	case model.GranularityMonth, model.GranularityYear:
	default:
		return nil, fmt.Errorf("%w: unknown granularity %q", apperr.ErrValidation, f.Granularity)
	}
	if f.Year < 0 {
		return nil, fmt.Errorf("%w: year must be positive", apperr.ErrValidation)
	}
	if f.Account != nil {
		if err := f.Account.Validate(); err != nil {
			return nil, err
		}
	}
	return s.balanceRepo.BalanceByPeriod(ctx, f)
}
