package commands_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
	"warehouse/internal/core/ports"
)

type MockPalletRepository struct{ mock.Mock }

func (m *MockPalletRepository) Add(ctx context.Context, p *pallet.Pallet) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPalletRepository) Update(ctx context.Context, p *pallet.Pallet) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPalletRepository) Get(ctx context.Context, id kernel.ID) (*pallet.Pallet, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*pallet.Pallet)
	return p, args.Error(1)
}

func (m *MockPalletRepository) GetAll(ctx context.Context) ([]*pallet.Pallet, error) {
	args := m.Called(ctx)
	pallets, _ := args.Get(0).([]*pallet.Pallet)
	return pallets, args.Error(1)
}

type MockBoxRepository struct{ mock.Mock }

func (m *MockBoxRepository) Add(ctx context.Context, b *pallet.Box) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoxRepository) Update(ctx context.Context, b *pallet.Box) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoxRepository) Get(ctx context.Context, id kernel.ID) (*pallet.Box, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*pallet.Box)
	return b, args.Error(1)
}

func (m *MockBoxRepository) GetAll(ctx context.Context) ([]*pallet.Box, error) {
	args := m.Called(ctx)
	boxes, _ := args.Get(0).([]*pallet.Box)
	return boxes, args.Error(1)
}

// MockUoW satisfies PalletUoW, BoxUoW and UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) PalletRepository() ports.PalletRepository {
	args := m.Called()
	return args.Get(0).(ports.PalletRepository)
}

func (m *MockUoW) BoxRepository() ports.BoxRepository {
	args := m.Called()
	return args.Get(0).(ports.BoxRepository)
}

type MockPalletUoWFactory struct{ mock.Mock }

func (m *MockPalletUoWFactory) Create() commands.PalletUoW {
	args := m.Called()
	return args.Get(0).(commands.PalletUoW)
}

type MockBoxUoWFactory struct{ mock.Mock }

func (m *MockBoxUoWFactory) Create() commands.BoxUoW {
	args := m.Called()
	return args.Get(0).(commands.BoxUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func assignID[T interface{ AssignID(kernel.ID) error }](id kernel.ID) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if err := args.Get(1).(T).AssignID(id); err != nil {
			panic(err)
		}
	}
}

func date(value string) *kernel.Date {
	d, err := kernel.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return &d
}
