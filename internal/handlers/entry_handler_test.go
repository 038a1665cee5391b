package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
)

type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) Create(ctx context.Context, actor model.Actor, p model.EntryCreateRequest) (*model.Entry, error) {
	args := m.Called(ctx, actor, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *MockEntryService) Update(ctx context.Context, actor model.Actor, id int64, p model.EntryUpdateRequest) (*model.Entry, error) {
	args := m.Called(ctx, actor, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *MockEntryService) Delete(ctx context.Context, actor model.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockEntryService) Get(ctx context.Context, id int64) (*model.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *MockEntryService) List(ctx context.Context, f model.EntryFilter) ([]*model.Entry, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Entry), args.Get(1).(int64), args.Error(2)
}

func TestEntryHandler_CreateEntry(t *testing.T) {
	svc := new(MockEntryService)
	handler := NewEntryHandler(svc)

	body, _ := json.Marshal(entryRequest{
		Date:        "2026-03-01",
		Description: "Subvention DRAC",
		Credit:      decimal.NewFromInt(500),
		Account:     model.AssociationRef(),
	})

	svc.On("Create", mock.Anything, testEditor, mock.MatchedBy(func(p model.EntryCreateRequest) bool {
		return p.Credit.Equal(decimal.NewFromInt(500)) && p.Account.Equal(model.AssociationRef())
	})).Return(&model.Entry{ID: 1, Category: model.CategorySubvention}, nil)

	ctx := asActor(setupTestContext("POST", "/entries", body), testEditor)
	handler.CreateEntry(ctx)

	assert.Equal(t, 201, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestEntryHandler_ListEntries_ParsesFilters(t *testing.T) {
	svc := new(MockEntryService)
	handler := NewEntryHandler(svc)

	svc.On("List", mock.Anything, mock.MatchedBy(func(f model.EntryFilter) bool {
		return f.Account != nil && f.Account.Equal(model.ArtistRef(3)) &&
			f.Category != nil && *f.Category == model.CategoryCachet &&
			f.Limit == 20 && f.Desc
	})).Return([]*model.Entry{{ID: 1}}, int64(1), nil)

	ctx := asActor(setupTestContext("GET",
		"/entries?kind=artist&account_id=3&category=cachet&limit=20&order=desc", nil), testEditor)
	handler.ListEntries(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())

	var response entryListResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	assert.Equal(t, int64(1), response.Total)

	svc.AssertExpectations(t)
}

func TestEntryHandler_ListEntries_BadAccountFilter(t *testing.T) {
	handler := NewEntryHandler(new(MockEntryService))

	// artist filter without an id is contradictory
	ctx := asActor(setupTestContext("GET", "/entries?kind=artist", nil), testEditor)
	handler.ListEntries(ctx)

	assert.Equal(t, 400, ctx.Response.StatusCode())
}

func TestEntryHandler_UpdateEntry_TransferLegRejected(t *testing.T) {
	svc := new(MockEntryService)
	handler := NewEntryHandler(svc)

	body, _ := json.Marshal(entryRequest{
		Date:    "2026-03-01",
		Debit:   decimal.NewFromInt(10),
		Account: model.AssociationRef(),
	})
	svc.On("Update", mock.Anything, testEditor, int64(41), mock.Anything).
		Return(nil, apperr.ErrValidation)

	ctx := asActor(setupTestContext("PUT", "/entries/41", body), testEditor)
	ctx.SetUserValue("id", "41")
	handler.UpdateEntry(ctx)

	assert.Equal(t, 400, ctx.Response.StatusCode())
}
