package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEntryRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewEntryRepository(db)
	ctx := context.Background()

	entry := &model.Entry{
		Date:        date(2026, 3, 1),
		Description: "Subvention DRAC",
		Credit:      decimal.NewFromInt(500),
		Debit:       decimal.Zero,
		Account:     model.AssociationRef(),
		Category:    model.CategorySubvention,
		CreatedBy:   1,
	}

	created, err := repo.Create(ctx, entry)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Subvention DRAC", got.Description)
	assert.True(t, got.Credit.Equal(decimal.NewFromInt(500)))
	assert.True(t, got.Debit.IsZero())
	assert.Equal(t, model.AccountAssociation, got.Account.Kind)
	assert.Nil(t, got.TransferID)
}

func TestEntryRepository_Get_NotFound(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewEntryRepository(db)

	_, err := repo.Get(context.Background(), 9999)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestEntryRepository_Update_PreservesID(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewEntryRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Entry{
		Date:        date(2026, 1, 10),
		Description: "Essence",
		Debit:       decimal.NewFromInt(40),
		Account:     model.ArtistRef(7),
		Category:    model.CategoryTransport,
		CreatedBy:   1,
	})
	require.NoError(t, err)

	created.Description = "Essence tournée"
	created.Debit = decimal.NewFromInt(55)
	created.Account = model.ProjectRef(3)
	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Essence tournée", got.Description)
	assert.True(t, got.Debit.Equal(decimal.NewFromInt(55)))
	assert.Equal(t, model.ProjectRef(3), got.Account)
}

func TestEntryRepository_Update_NotFound(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewEntryRepository(db)

	err := repo.Update(context.Background(), &model.Entry{
		ID:      4242,
		Date:    date(2026, 1, 1),
		Debit:   decimal.NewFromInt(1),
		Account: model.AssociationRef(),
	})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestEntryRepository_LinkTransfer(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewEntryRepository(db)
	ctx := context.Background()

	a, err := repo.Create(ctx, &model.Entry{
		Date: date(2026, 2, 1), Debit: decimal.NewFromInt(10),
		Account: model.AssociationRef(), CreatedBy: 1,
	})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &model.Entry{
		Date: date(2026, 2, 1), Credit: decimal.NewFromInt(10),
		Account: model.ArtistRef(1), CreatedBy: 1,
	})
	require.NoError(t, err)

	require.NoError(t, repo.LinkTransfer(ctx, []int64{a.ID, b.ID}, 99))

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TransferID)
	assert.Equal(t, int64(99), *got.TransferID)

	// a missing leg is an integrity failure, not a quiet no-op
	err = repo.LinkTransfer(ctx, []int64{a.ID, 12345}, 100)
	assert.True(t, errors.Is(err, apperr.ErrIntegrity))
}

func TestEntryRepository_Delete(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewEntryRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Entry{
		Date: date(2026, 4, 2), Credit: decimal.NewFromInt(25),
		Account: model.AssociationRef(), CreatedBy: 1,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	err = repo.Delete(ctx, created.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestEntryRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewEntryRepository(db)
	ctx := context.Background()

	seed := []*model.Entry{
		{Date: date(2026, 1, 10), Description: "don janvier", Credit: decimal.NewFromInt(100), Account: model.AssociationRef(), Category: model.CategoryDon, CreatedBy: 1},
		{Date: date(2026, 2, 5), Description: "cachet", Debit: decimal.NewFromInt(150), Account: model.ArtistRef(1), Category: model.CategoryCachet, CreatedBy: 1},
		{Date: date(2026, 3, 20), Description: "location salle", Debit: decimal.NewFromInt(80), Account: model.ProjectRef(2), Category: model.CategoryLocation, CreatedBy: 1},
	}
	for _, e := range seed {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	t.Run("newest first", func(t *testing.T) {
		items, total, err := repo.List(ctx, model.EntryFilter{Desc: true})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, items, 3)
		assert.Equal(t, "location salle", items[0].Description)
		assert.Equal(t, "don janvier", items[2].Description)
	})

	t.Run("by account", func(t *testing.T) {
		acct := model.ArtistRef(1)
		items, total, err := repo.List(ctx, model.EntryFilter{Account: &acct})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "cachet", items[0].Description)
	})

	t.Run("association only", func(t *testing.T) {
		acct := model.AssociationRef()
		_, total, err := repo.List(ctx, model.EntryFilter{Account: &acct})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("date window", func(t *testing.T) {
		from := date(2026, 2, 1)
		to := date(2026, 3, 1)
		items, total, err := repo.List(ctx, model.EntryFilter{From: &from, To: &to})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "cachet", items[0].Description)
	})
}

func TestEntryRepository_BalanceByPeriod(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewEntryRepository(db)
	ctx := context.Background()

	seed := []*model.Entry{
		{Date: date(2026, 1, 10), Credit: decimal.NewFromInt(100), Account: model.AssociationRef(), CreatedBy: 1},
		{Date: date(2026, 1, 20), Debit: decimal.NewFromInt(30), Account: model.AssociationRef(), CreatedBy: 1},
		{Date: date(2026, 2, 5), Credit: decimal.NewFromInt(50), Account: model.ArtistRef(1), CreatedBy: 1},
		{Date: date(2025, 12, 31), Credit: decimal.NewFromInt(999), Account: model.AssociationRef(), CreatedBy: 1},
	}
	for _, e := range seed {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	t.Run("monthly within year", func(t *testing.T) {
		lines, err := repo.BalanceByPeriod(ctx, model.ReportFilter{
			Granularity: model.GranularityMonth,
			Year:        2026,
		})
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "2026-01", lines[0].Period)
		assert.True(t, lines[0].Credit.Equal(decimal.NewFromInt(100)))
		assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(30)))
		assert.True(t, lines[0].Balance.Equal(decimal.NewFromInt(70)))
		assert.Equal(t, "2026-02", lines[1].Period)
	})

	t.Run("yearly all time", func(t *testing.T) {
		lines, err := repo.BalanceByPeriod(ctx, model.ReportFilter{
			Granularity: model.GranularityYear,
		})
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "2025", lines[0].Period)
		assert.Equal(t, "2026", lines[1].Period)
	})

	t.Run("scoped to account", func(t *testing.T) {
		acct := model.ArtistRef(1)
		lines, err := repo.BalanceByPeriod(ctx, model.ReportFilter{
			Granularity: model.GranularityMonth,
			Year:        2026,
			Account:     &acct,
		})
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "2026-02", lines[0].Period)
		assert.True(t, lines[0].Credit.Equal(decimal.NewFromInt(50)))
	})
}
