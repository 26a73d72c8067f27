package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
	"warehouse/internal/pkg/errs"
)

func storedPallet(t *testing.T, id kernel.ID, width, depth uint32) *pallet.Pallet {
	t.Helper()
	p, err := pallet.RestorePallet(id, width, 15, depth, nil)
	require.NoError(t, err)
	return p
}

func storedBox(t *testing.T, id kernel.ID, width, depth uint32) *pallet.Box {
	t.Helper()
	b, err := pallet.RestoreBox(id, width, 20, depth, 500, nil, *date("2024-01-01"))
	require.NoError(t, err)
	return b
}

type placementFixture struct {
	pallets *MockPalletRepository
	boxes   *MockBoxRepository
	uow     *MockUoW
	factory *MockUoWFactory
}

func newPlacementFixture() placementFixture {
	f := placementFixture{
		pallets: new(MockPalletRepository),
		boxes:   new(MockBoxRepository),
		uow:     new(MockUoW),
		factory: new(MockUoWFactory),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("PalletRepository").Return(f.pallets).Maybe()
	f.uow.On("BoxRepository").Return(f.boxes).Maybe()
	return f
}

func (f placementFixture) assert(t *testing.T) {
	f.pallets.AssertExpectations(t)
	f.boxes.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func TestAddBoxToPalletCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	p := storedPallet(t, 7, 100, 100)
	box := storedBox(t, 42, 50, 50)
	cmd, _ := commands.NewAddBoxToPalletCommand(7, 42)

	f := newPlacementFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.pallets.On("Get", mock.Anything, kernel.ID(7)).Return(p, nil).Once(),
		f.boxes.On("Get", mock.Anything, kernel.ID(42)).Return(box, nil).Once(),
		f.pallets.On("Update", mock.Anything, p).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewAddBoxToPalletCommandHandler(f.factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, p.Contains(box))
	assert.Same(t, p, box.Pallet())
	f.assert(t)
}

func TestAddBoxToPalletCommandHandler_Handle_StateErrorSkipsUpdate(t *testing.T) {
	tests := []struct {
		name    string
		arrange func(t *testing.T) (*pallet.Pallet, *pallet.Box)
		wantErr error
	}{
		{
			name: "box does not fit",
			arrange: func(t *testing.T) (*pallet.Pallet, *pallet.Box) {
				return storedPallet(t, 7, 100, 100), storedBox(t, 42, 101, 50)
			},
			wantErr: pallet.ErrBoxDoesNotFitPallet,
		},
		{
			name: "box is on another pallet",
			arrange: func(t *testing.T) (*pallet.Pallet, *pallet.Box) {
				box := storedBox(t, 42, 50, 50)
				_, err := pallet.RestorePallet(8, 100, 15, 100, []*pallet.Box{box})
				require.NoError(t, err)
				return storedPallet(t, 7, 100, 100), box
			},
			wantErr: pallet.ErrBoxIsOnAnotherPallet,
		},
		{
			name: "box is already on the pallet",
			arrange: func(t *testing.T) (*pallet.Pallet, *pallet.Box) {
				box := storedBox(t, 42, 50, 50)
				p, err := pallet.RestorePallet(7, 100, 15, 100, []*pallet.Box{box})
				require.NoError(t, err)
				return p, box
			},
			wantErr: pallet.ErrBoxIsAlreadyOnPallet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			p, box := tt.arrange(t)
			cmd, _ := commands.NewAddBoxToPalletCommand(7, 42)

			f := newPlacementFixture()
			f.uow.On("Begin", ctx).Return(nil).Once()
			f.pallets.On("Get", mock.Anything, kernel.ID(7)).Return(p, nil).Once()
			f.boxes.On("Get", mock.Anything, kernel.ID(42)).Return(box, nil).Once()
			f.uow.On("Rollback", ctx).Return(nil).Once()

			h := commands.NewAddBoxToPalletCommandHandler(f.factory)
			err := h.Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, errs.IsState(err))
			f.pallets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
			f.assert(t)
		})
	}
}

func TestAddBoxToPalletCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAddBoxToPalletCommand(7, 42)
	notFound := errs.NewObjectNotFoundError("pallet", kernel.ID(7))

	f := newPlacementFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.pallets.On("Get", mock.Anything, kernel.ID(7)).Return(nil, notFound).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewAddBoxToPalletCommandHandler(f.factory)
	err := h.Handle(ctx, cmd)

	assert.True(t, errs.IsNotFound(err))
	f.boxes.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	f.assert(t)
}

func TestAddBoxToPalletCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	h := commands.NewAddBoxToPalletCommandHandler(factory)

	err := h.Handle(t.Context(), commands.AddBoxToPalletCommand{})

	require.ErrorIs(t, err, commands.ErrAddBoxToPalletCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestRemoveBoxFromPalletCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	box := storedBox(t, 42, 50, 50)
	p, err := pallet.RestorePallet(7, 100, 15, 100, []*pallet.Box{box})
	require.NoError(t, err)
	cmd, _ := commands.NewRemoveBoxFromPalletCommand(7, 42)

	f := newPlacementFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.pallets.On("Get", mock.Anything, kernel.ID(7)).Return(p, nil).Once(),
		f.boxes.On("Get", mock.Anything, kernel.ID(42)).Return(box, nil).Once(),
		f.pallets.On("Update", mock.Anything, p).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewRemoveBoxFromPalletCommandHandler(f.factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.False(t, p.HasBoxes())
	assert.Nil(t, box.PalletID())
	f.assert(t)
}

func TestRemoveBoxFromPalletCommandHandler_Handle_AbsentBoxIsNoop(t *testing.T) {
	ctx := t.Context()
	p := storedPallet(t, 7, 100, 100)
	box := storedBox(t, 42, 50, 50)
	cmd, _ := commands.NewRemoveBoxFromPalletCommand(7, 42)

	f := newPlacementFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.pallets.On("Get", mock.Anything, kernel.ID(7)).Return(p, nil).Once()
	f.boxes.On("Get", mock.Anything, kernel.ID(42)).Return(box, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewRemoveBoxFromPalletCommandHandler(f.factory)
	require.NoError(t, h.Handle(ctx, cmd))

	f.pallets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.assert(t)
}

func TestRemoveBoxFromPalletCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	box := storedBox(t, 42, 50, 50)
	p, err := pallet.RestorePallet(7, 100, 15, 100, []*pallet.Box{box})
	require.NoError(t, err)
	cmd, _ := commands.NewRemoveBoxFromPalletCommand(7, 42)

	f := newPlacementFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.pallets.On("Get", mock.Anything, kernel.ID(7)).Return(p, nil).Once()
	f.boxes.On("Get", mock.Anything, kernel.ID(42)).Return(box, nil).Once()
	f.pallets.On("Update", mock.Anything, p).Return(errors.New("update error")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewRemoveBoxFromPalletCommandHandler(f.factory)
	require.EqualError(t, h.Handle(ctx, cmd), "update error")
	f.assert(t)
}
