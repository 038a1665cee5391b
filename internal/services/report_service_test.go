package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
)

type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) BalanceByPeriod(ctx context.Context, f model.ReportFilter) ([]model.BalanceLine, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BalanceLine), args.Error(1)
}

func TestReportService_Balance_DefaultsToMonthly(t *testing.T) {
	balanceRepo := new(MockBalanceRepository)
	svc := NewReportService(balanceRepo)
	ctx := context.Background()

	balanceRepo.On("BalanceByPeriod", ctx, model.ReportFilter{
		Granularity: model.GranularityMonth,
		Year:        2026,
	}).Return([]model.BalanceLine{
		{Period: "2026-01", Credit: decimal.NewFromInt(100), Debit: decimal.NewFromInt(30), Balance: decimal.NewFromInt(70)},
	}, nil)

	lines, err := svc.Balance(ctx, model.ReportFilter{Year: 2026})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "2026-01", lines[0].Period)
	assert.True(t, lines[0].Balance.Equal(decimal.NewFromInt(70)))
}

func TestReportService_Balance_UnknownGranularity(t *testing.T) {
	svc := NewReportService(new(MockBalanceRepository))

	_, err := svc.Balance(context.Background(), model.ReportFilter{Granularity: "week"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestReportService_Balance_BadAccount(t *testing.T) {
	svc := NewReportService(new(MockBalanceRepository))
	bad := model.AccountRef{Kind: "warehouse", ID: 1}

	_, err := svc.Balance(context.Background(), model.ReportFilter{Account: &bad})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestReportService_Balance_YearlyPassesThrough(t *testing.T) {
	balanceRepo := new(MockBalanceRepository)
	svc := NewReportService(balanceRepo)
	ctx := context.Background()
	account := model.ProjectRef(2)

	balanceRepo.On("BalanceByPeriod", ctx, model.ReportFilter{
		Granularity: model.GranularityYear,
		Account:     &account,
	}).Return([]model.BalanceLine{}, nil)

	_, err := svc.Balance(ctx, model.ReportFilter{Granularity: model.GranularityYear, Account: &account})
	require.NoError(t, err)
	balanceRepo.AssertExpectations(t)
}
