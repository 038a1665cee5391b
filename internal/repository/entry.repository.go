package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
	"github.com/acolin/asso-ledger/pkg/pg"
)

type EntryRepository struct {
	*pg.DB
}

func NewEntryRepository(db *pg.DB) *EntryRepository {
	return &EntryRepository{
		db,
	}
}

func (r *EntryRepository) Create(ctx context.Context, entry *model.Entry) (*model.Entry, error) {
	entity := toEntryEntity(entry)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toEntryModel(entity), nil
}

func (r *EntryRepository) Get(ctx context.Context, id int64) (*model.Entry, error) {
	var entity EntryEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ledger entry %d", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return toEntryModel(&entity), nil
}

// Update rewrites the mutable columns of an entry in place. The entry keeps
// its id, so anything referencing it (invoices, a transfer) stays valid.
func (r *EntryRepository) Update(ctx context.Context, entry *model.Entry) error {
	artistID, projectID := entry.Account.Columns()
	result := r.Write(ctx).
		Model(&EntryEntity{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"entry_date":  entry.Date,
			"description": entry.Description,
			"credit":      entry.Credit,
			"debit":       entry.Debit,
			"artist_id":   artistID,
			"project_id":  projectID,
			"category":    string(entry.Category),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: ledger entry %d", apperr.ErrNotFound, entry.ID)
	}
	return nil
}

// LinkTransfer stamps the transfer back-reference on freshly created legs.
func (r *EntryRepository) LinkTransfer(ctx context.Context, entryIDs []int64, transferID int64) error {
	result := r.Write(ctx).
		Model(&EntryEntity{}).
		Where("id IN ?", entryIDs).
		Update("transfer_id", transferID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(entryIDs)) {
		return fmt.Errorf("%w: linked %d of %d transfer legs", apperr.ErrIntegrity, result.RowsAffected, len(entryIDs))
	}
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).Where("id = ?", id).Delete(&EntryEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: ledger entry %d", apperr.ErrNotFound, id)
	}
	return nil
}

func (r *EntryRepository) List(ctx context.Context, f model.EntryFilter) ([]*model.Entry, int64, error) {
	q := r.Read(ctx).Model(&EntryEntity{})

	if f.Account != nil {
		artistID, projectID := f.Account.Columns()
		switch {
		case artistID != nil:
			q = q.Where("artist_id = ?", *artistID)
		case projectID != nil:
			q = q.Where("project_id = ?", *projectID)
		default:
			q = q.Where("artist_id IS NULL AND project_id IS NULL")
		}
	}
	if f.Category != nil {
		q = q.Where("category = ?", string(*f.Category))
	}
	if f.From != nil {
		q = q.Where("entry_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("entry_date < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "entry_date"
	if f.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var entities []*EntryEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toEntryModels(entities), total, nil
}

// CountByAccount reports how many entries reference an artist or project.
// Used as a referential guard before deleting reference data.
func (r *EntryRepository) CountByAccount(ctx context.Context, account model.AccountRef) (int64, error) {
	q := r.Read(ctx).Model(&EntryEntity{})
	artistID, projectID := account.Columns()
	switch {
	case artistID != nil:
		q = q.Where("artist_id = ?", *artistID)
	case projectID != nil:
		q = q.Where("project_id = ?", *projectID)
	default:
		q = q.Where("artist_id IS NULL AND project_id IS NULL")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

type balanceRow struct {
	Period string          `gorm:"column:period"`
	Credit decimal.Decimal `gorm:"column:credit"`
	Debit  decimal.Decimal `gorm:"column:debit"`
}

// BalanceByPeriod sums credits and debits per month or year. The period
// expression depends on the dialect so the same query runs against postgres
// in production and sqlite in tests.
func (r *EntryRepository) BalanceByPeriod(ctx context.Context, f model.ReportFilter) ([]model.BalanceLine, error) {
	db := r.Read(ctx)

	var periodExpr string
	monthly := f.Granularity != model.GranularityYear
	if db.Dialector.Name() == "sqlite" {
		if monthly {
			periodExpr = "strftime('%Y-%m', entry_date)"
		} else {
			periodExpr = "strftime('%Y', entry_date)"
		}
	} else {
		if monthly {
			periodExpr = "to_char(entry_date, 'YYYY-MM')"
		} else {
			periodExpr = "to_char(entry_date, 'YYYY')"
		}
	}

	q := db.Model(&EntryEntity{}).
		Select(periodExpr + " AS period, SUM(credit) AS credit, SUM(debit) AS debit").
		Group("period").
		Order("period ASC")

	if f.Year > 0 {
		q = q.Where("entry_date >= ? AND entry_date < ?",
			fmt.Sprintf("%04d-01-01", f.Year), fmt.Sprintf("%04d-01-01", f.Year+1))
	}
	if f.Account != nil {
		artistID, projectID := f.Account.Columns()
		switch {
		case artistID != nil:
			q = q.Where("artist_id = ?", *artistID)
		case projectID != nil:
			q = q.Where("project_id = ?", *projectID)
		default:
			q = q.Where("artist_id IS NULL AND project_id IS NULL")
		}
	}

	var rows []balanceRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	lines := make([]model.BalanceLine, len(rows))
	for i, row := range rows {
		lines[i] = model.BalanceLine{
			Period:  row.Period,
			Credit:  row.Credit,
			Debit:   row.Debit,
			Balance: row.Credit.Sub(row.Debit),
		}
	}
	return lines, nil
}
