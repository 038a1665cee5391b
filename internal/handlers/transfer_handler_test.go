package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
	xhttp "github.com/acolin/asso-ledger/pkg/xhttp"
)

type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Create(ctx context.Context, actor model.Actor, p model.TransferCreateRequest) (*model.Transfer, error) {
	args := m.Called(ctx, actor, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transfer), args.Error(1)
}

func (m *MockTransferService) Update(ctx context.Context, actor model.Actor, id int64, p model.TransferCreateRequest) (*model.Transfer, error) {
	args := m.Called(ctx, actor, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transfer), args.Error(1)
}

func (m *MockTransferService) Delete(ctx context.Context, actor model.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockTransferService) Get(ctx context.Context, id int64) (*model.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transfer), args.Error(1)
}

func (m *MockTransferService) List(ctx context.Context) ([]*model.Transfer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transfer), args.Error(1)
}

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func asActor(ctx *xhttp.RequestCtx, a model.Actor) *xhttp.RequestCtx {
	ctx.SetUserValue(actorKey, a)
	return ctx
}

var testEditor = model.Actor{ProfileID: 7, Role: model.RoleEditor}

func TestTransferHandler_CreateTransfer(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockTransferService)
		handler := NewTransferHandler(svc)

		body, _ := json.Marshal(transferRequest{
			Date:        "2026-04-01",
			Amount:      decimal.NewFromInt(120),
			Description: "avance",
			Source:      model.AssociationRef(),
			Destination: model.ArtistRef(3),
		})

		svc.On("Create", mock.Anything, testEditor, mock.MatchedBy(func(p model.TransferCreateRequest) bool {
			return p.Amount.Equal(decimal.NewFromInt(120)) &&
				p.Source.Equal(model.AssociationRef()) &&
				p.Destination.Equal(model.ArtistRef(3))
		})).Return(&model.Transfer{ID: 100, Amount: decimal.NewFromInt(120)}, nil)

		ctx := asActor(setupTestContext("POST", "/transfers", body), testEditor)
		handler.CreateTransfer(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())

		var response model.Transfer
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, int64(100), response.ID)

		svc.AssertExpectations(t)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		handler := NewTransferHandler(new(MockTransferService))

		ctx := asActor(setupTestContext("POST", "/transfers", []byte("nope")), testEditor)
		handler.CreateTransfer(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("invalid date", func(t *testing.T) {
		handler := NewTransferHandler(new(MockTransferService))

		body, _ := json.Marshal(transferRequest{Date: "pas une date"})
		ctx := asActor(setupTestContext("POST", "/transfers", body), testEditor)
		handler.CreateTransfer(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		svc := new(MockTransferService)
		handler := NewTransferHandler(svc)

		body, _ := json.Marshal(transferRequest{
			Date:        "2026-04-01",
			Amount:      decimal.Zero,
			Source:      model.AssociationRef(),
			Destination: model.ArtistRef(3),
		})
		svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperr.ErrValidation)

		ctx := asActor(setupTestContext("POST", "/transfers", body), testEditor)
		handler.CreateTransfer(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("permission error maps to 403", func(t *testing.T) {
		svc := new(MockTransferService)
		handler := NewTransferHandler(svc)

		body, _ := json.Marshal(transferRequest{
			Date:        "2026-04-01",
			Amount:      decimal.NewFromInt(10),
			Source:      model.AssociationRef(),
			Destination: model.ArtistRef(3),
		})
		svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperr.ErrPermission)

		ctx := asActor(setupTestContext("POST", "/transfers", body), testEditor)
		handler.CreateTransfer(ctx)

		assert.Equal(t, 403, ctx.Response.StatusCode())
	})

	t.Run("integrity error maps to 500 with admin hint", func(t *testing.T) {
		svc := new(MockTransferService)
		handler := NewTransferHandler(svc)

		body, _ := json.Marshal(transferRequest{
			Date:        "2026-04-01",
			Amount:      decimal.NewFromInt(10),
			Source:      model.AssociationRef(),
			Destination: model.ArtistRef(3),
		})
		svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperr.ErrIntegrity)

		ctx := asActor(setupTestContext("POST", "/transfers", body), testEditor)
		handler.CreateTransfer(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())
		var response map[string]string
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Contains(t, response["error"], "administrator")
	})
}

func TestTransferHandler_DeleteTransfer(t *testing.T) {
	svc := new(MockTransferService)
	handler := NewTransferHandler(svc)

	svc.On("Delete", mock.Anything, testEditor, int64(42)).Return(nil)

	ctx := asActor(setupTestContext("DELETE", "/transfers/42", nil), testEditor)
	ctx.SetUserValue("id", "42")
	handler.DeleteTransfer(ctx)

	assert.Equal(t, 204, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestTransferHandler_GetTransfer_NotFound(t *testing.T) {
	svc := new(MockTransferService)
	handler := NewTransferHandler(svc)

	svc.On("Get", mock.Anything, int64(9)).Return(nil, apperr.ErrNotFound)

	ctx := setupTestContext("GET", "/transfers/9", nil)
	ctx.SetUserValue("id", "9")
	handler.GetTransfer(ctx)

	assert.Equal(t, 404, ctx.Response.StatusCode())
}

func TestTransferHandler_ListTransfers(t *testing.T) {
	svc := new(MockTransferService)
	handler := NewTransferHandler(svc)

	svc.On("List", mock.Anything).Return([]*model.Transfer{
		{ID: 2, SourceName: "Tournée 2026", DestinationName: model.AssociationLabel},
		{ID: 1, SourceName: model.AssociationLabel, DestinationName: "Nina B."},
	}, nil)

	ctx := setupTestContext("GET", "/transfers", nil)
	handler.ListTransfers(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())

	var response transferListResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
	require.Len(t, response.Items, 2)
	assert.Equal(t, int64(2), response.Items[0].ID)
}
