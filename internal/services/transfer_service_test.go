package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
)

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) Create(ctx context.Context, transfer *model.Transfer) (*model.Transfer, error) {
	args := m.Called(ctx, transfer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transfer), args.Error(1)
}

func (m *MockTransferRepository) Get(ctx context.Context, id int64) (*model.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transfer), args.Error(1)
}

func (m *MockTransferRepository) Update(ctx context.Context, transfer *model.Transfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransferRepository) List(ctx context.Context) ([]*model.Transfer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transfer), args.Error(1)
}

type MockTransferEntryRepository struct {
	mock.Mock
}

func (m *MockTransferEntryRepository) Create(ctx context.Context, entry *model.Entry) (*model.Entry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *MockTransferEntryRepository) Update(ctx context.Context, entry *model.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTransferEntryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransferEntryRepository) LinkTransfer(ctx context.Context, entryIDs []int64, transferID int64) error {
	args := m.Called(ctx, entryIDs, transferID)
	return args.Error(0)
}

func (m *MockTransferEntryRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var (
	editor = model.Actor{ProfileID: 7, Role: model.RoleEditor}
	admin  = model.Actor{ProfileID: 1, Role: model.RoleAdmin}
	viewer = model.Actor{ProfileID: 9, Role: model.RoleViewer}
)

func transferFixtures() (*MockTransferRepository, *MockTransferEntryRepository, *MockAccountResolver, *MockAccountResolver, *TransferService) {
	transferRepo := new(MockTransferRepository)
	entryRepo := new(MockTransferEntryRepository)
	artists := new(MockAccountResolver)
	projects := new(MockAccountResolver)
	svc := NewTransferService(transferRepo, entryRepo, artists, projects)
	return transferRepo, entryRepo, artists, projects, svc
}

func validTransferRequest() model.TransferCreateRequest {
	return model.TransferCreateRequest{
		Date:        time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(120),
		Description: "avance cachet avril",
		Source:      model.AssociationRef(),
		Destination: model.ArtistRef(3),
	}
}

func TestTransferService_Create_WritesBalancedPair(t *testing.T) {
	transferRepo, entryRepo, artists, _, svc := transferFixtures()
	ctx := context.Background()
	req := validTransferRequest()

	artists.On("Exists", ctx, int64(3)).Return(true, nil)
	entryRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)

	entryRepo.On("Create", ctx, mock.MatchedBy(func(e *model.Entry) bool {
		return e.Debit.Equal(req.Amount) && e.Credit.IsZero() &&
			e.Account.Equal(req.Source) && e.Category == model.CategoryTransferInternal
	})).Return(&model.Entry{ID: 41, Debit: req.Amount, Account: req.Source}, nil).Once()

	entryRepo.On("Create", ctx, mock.MatchedBy(func(e *model.Entry) bool {
		return e.Credit.Equal(req.Amount) && e.Debit.IsZero() &&
			e.Account.Equal(req.Destination) && e.Category == model.CategoryTransferInternal
	})).Return(&model.Entry{ID: 42, Credit: req.Amount, Account: req.Destination}, nil).Once()

	transferRepo.On("Create", ctx, mock.MatchedBy(func(tr *model.Transfer) bool {
		return tr.DebitEntryID == 41 && tr.CreditEntryID == 42 && tr.Amount.Equal(req.Amount)
	})).Return(&model.Transfer{ID: 100, DebitEntryID: 41, CreditEntryID: 42, Amount: req.Amount}, nil)

	entryRepo.On("LinkTransfer", ctx, []int64{41, 42}, int64(100)).Return(nil)

	transferRepo.On("Get", ctx, int64(100)).Return(&model.Transfer{
		ID: 100, DebitEntryID: 41, CreditEntryID: 42,
		Amount: req.Amount, SourceName: model.AssociationLabel, DestinationName: "Nina B.",
	}, nil)

	got, err := svc.Create(ctx, editor, req)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.ID)
	assert.Equal(t, "Nina B.", got.DestinationName)

	transferRepo.AssertExpectations(t)
	entryRepo.AssertExpectations(t)
}

func TestTransferService_Create_SameAccountRejected(t *testing.T) {
	_, _, _, _, svc := transferFixtures()

	req := validTransferRequest()
	req.Source = model.ArtistRef(3)
	req.Destination = model.ArtistRef(3)

	_, err := svc.Create(context.Background(), editor, req)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTransferService_Create_NonPositiveAmountRejected(t *testing.T) {
	_, _, _, _, svc := transferFixtures()
	ctx := context.Background()

	req := validTransferRequest()
	req.Amount = decimal.Zero
	_, err := svc.Create(ctx, editor, req)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	req.Amount = decimal.NewFromInt(-5)
	_, err = svc.Create(ctx, editor, req)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTransferService_Create_UnknownEndpoint(t *testing.T) {
	_, _, artists, _, svc := transferFixtures()
	ctx := context.Background()

	req := validTransferRequest()
	artists.On("Exists", ctx, int64(3)).Return(false, nil)

	_, err := svc.Create(ctx, editor, req)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTransferService_Create_ViewerForbidden(t *testing.T) {
	_, _, _, _, svc := transferFixtures()

	_, err := svc.Create(context.Background(), viewer, validTransferRequest())
	assert.ErrorIs(t, err, apperr.ErrPermission)
}

func TestTransferService_Create_RollsBackOnLinkFailure(t *testing.T) {
	transferRepo, entryRepo, artists, _, svc := transferFixtures()
	ctx := context.Background()
	req := validTransferRequest()

	artists.On("Exists", ctx, int64(3)).Return(true, nil)
	entryRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	entryRepo.On("Create", ctx, mock.Anything).Return(&model.Entry{ID: 41}, nil).Once()
	entryRepo.On("Create", ctx, mock.Anything).Return(&model.Entry{ID: 42}, nil).Once()
	transferRepo.On("Create", ctx, mock.Anything).Return(&model.Transfer{ID: 100, DebitEntryID: 41, CreditEntryID: 42}, nil)
	entryRepo.On("LinkTransfer", ctx, []int64{41, 42}, int64(100)).Return(apperr.ErrIntegrity)

	_, err := svc.Create(ctx, editor, req)
	assert.ErrorIs(t, err, apperr.ErrIntegrity)
}

func TestTransferService_Update_PreservesEntryIDs(t *testing.T) {
	transferRepo, entryRepo, artists, projects, svc := transferFixtures()
	ctx := context.Background()

	req := validTransferRequest()
	req.Amount = decimal.NewFromInt(300)
	req.Source = model.ProjectRef(5)
	req.Destination = model.ArtistRef(3)

	projects.On("Exists", ctx, int64(5)).Return(true, nil)
	artists.On("Exists", ctx, int64(3)).Return(true, nil)
	entryRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)

	current := &model.Transfer{
		ID: 100, DebitEntryID: 41, CreditEntryID: 42,
		Amount: decimal.NewFromInt(120),
		Source: model.AssociationRef(), Destination: model.ArtistRef(3),
	}
	transferRepo.On("Get", ctx, int64(100)).Return(current, nil)

	entryRepo.On("Update", ctx, mock.MatchedBy(func(e *model.Entry) bool {
		return e.ID == 41 && e.Debit.Equal(req.Amount) && e.Account.Equal(req.Source)
	})).Return(nil).Once()
	entryRepo.On("Update", ctx, mock.MatchedBy(func(e *model.Entry) bool {
		return e.ID == 42 && e.Credit.Equal(req.Amount) && e.Account.Equal(req.Destination)
	})).Return(nil).Once()

	transferRepo.On("Update", ctx, mock.MatchedBy(func(tr *model.Transfer) bool {
		return tr.ID == 100 && tr.DebitEntryID == 41 && tr.CreditEntryID == 42 &&
			tr.Amount.Equal(req.Amount) && tr.Source.Equal(req.Source)
	})).Return(nil)

	_, err := svc.Update(ctx, editor, 100, req)
	require.NoError(t, err)

	transferRepo.AssertExpectations(t)
	entryRepo.AssertExpectations(t)
}

// Both legs must go before the transfer row: ledger_entries.transfer_id
// references transfers(id), so deleting the transfer first trips the FK.
func TestTransferService_Delete_RemovesLegsBeforeTransfer(t *testing.T) {
	transferRepo, entryRepo, _, _, svc := transferFixtures()
	ctx := context.Background()

	var order []string
	entryRepo.On("WithinTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	transferRepo.On("Get", ctx, int64(100)).Return(&model.Transfer{
		ID: 100, DebitEntryID: 41, CreditEntryID: 42,
	}, nil)
	entryRepo.On("Delete", ctx, int64(41)).Run(func(mock.Arguments) {
		order = append(order, "debit leg")
	}).Return(nil)
	entryRepo.On("Delete", ctx, int64(42)).Run(func(mock.Arguments) {
		order = append(order, "credit leg")
	}).Return(nil)
	transferRepo.On("Delete", ctx, int64(100)).Run(func(mock.Arguments) {
		order = append(order, "transfer")
	}).Return(nil)

	require.NoError(t, svc.Delete(ctx, admin, 100))
	assert.Equal(t, []string{"debit leg", "credit leg", "transfer"}, order)

	transferRepo.AssertExpectations(t)
	entryRepo.AssertExpectations(t)
}

func TestTransferService_Delete_EditorForbidden(t *testing.T) {
	_, _, _, _, svc := transferFixtures()

	err := svc.Delete(context.Background(), editor, 100)
	assert.ErrorIs(t, err, apperr.ErrPermission)
}
