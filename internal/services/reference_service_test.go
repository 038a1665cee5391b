package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
)

type MockArtistRepository struct {
	mock.Mock
}

func (m *MockArtistRepository) Create(ctx context.Context, artist *model.Artist) (*model.Artist, error) {
	args := m.Called(ctx, artist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artist), args.Error(1)
}

func (m *MockArtistRepository) Get(ctx context.Context, id int64) (*model.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artist), args.Error(1)
}

func (m *MockArtistRepository) Update(ctx context.Context, artist *model.Artist) error {
	args := m.Called(ctx, artist)
	return args.Error(0)
}

func (m *MockArtistRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArtistRepository) List(ctx context.Context) ([]*model.Artist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Artist), args.Error(1)
}

type MockUsageCounter struct {
	mock.Mock
}

func (m *MockUsageCounter) CountByAccount(ctx context.Context, account model.AccountRef) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func TestArtistService_Delete_RefusedWhileReferenced(t *testing.T) {
	artistRepo := new(MockArtistRepository)
	usage := new(MockUsageCounter)
	svc := NewArtistService(artistRepo, usage)
	ctx := context.Background()

	usage.On("CountByAccount", ctx, model.ArtistRef(3)).Return(int64(4), nil)

	err := svc.Delete(ctx, admin, 3)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	artistRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestArtistService_Delete_Unreferenced(t *testing.T) {
	artistRepo := new(MockArtistRepository)
	usage := new(MockUsageCounter)
	svc := NewArtistService(artistRepo, usage)
	ctx := context.Background()

	usage.On("CountByAccount", ctx, model.ArtistRef(3)).Return(int64(0), nil)
	artistRepo.On("Delete", ctx, int64(3)).Return(nil)

	require.NoError(t, svc.Delete(ctx, admin, 3))
	artistRepo.AssertExpectations(t)
}

func TestArtistService_Create_TrimsName(t *testing.T) {
	artistRepo := new(MockArtistRepository)
	svc := NewArtistService(artistRepo, new(MockUsageCounter))
	ctx := context.Background()

	artistRepo.On("Create", ctx, mock.MatchedBy(func(a *model.Artist) bool {
		return a.Name == "Nina B."
	})).Return(&model.Artist{ID: 1, Name: "Nina B."}, nil)

	created, err := svc.Create(ctx, editor, model.ArtistCreateRequest{Name: "  Nina B.  "})
	require.NoError(t, err)
	assert.Equal(t, "Nina B.", created.Name)
}

func TestArtistService_Create_EmptyNameRejected(t *testing.T) {
	svc := NewArtistService(new(MockArtistRepository), new(MockUsageCounter))

	_, err := svc.Create(context.Background(), editor, model.ArtistCreateRequest{Name: "   "})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestArtistService_Delete_AdminOnly(t *testing.T) {
	svc := NewArtistService(new(MockArtistRepository), new(MockUsageCounter))

	err := svc.Delete(context.Background(), editor, 3)
	assert.ErrorIs(t, err, apperr.ErrPermission)
}
