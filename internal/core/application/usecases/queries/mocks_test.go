package queries_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
	"warehouse/internal/core/ports"
)

type MockPalletRepository struct{ mock.Mock }

func (m *MockPalletRepository) Add(_ context.Context, _ *pallet.Pallet) error    { return nil }
func (m *MockPalletRepository) Update(_ context.Context, _ *pallet.Pallet) error { return nil }
func (m *MockPalletRepository) Get(_ context.Context, _ kernel.ID) (*pallet.Pallet, error) {
	return nil, nil
}

func (m *MockPalletRepository) GetAll(ctx context.Context) ([]*pallet.Pallet, error) {
	args := m.Called(ctx)
	pallets, _ := args.Get(0).([]*pallet.Pallet)
	return pallets, args.Error(1)
}

type MockBoxRepository struct{ mock.Mock }

func (m *MockBoxRepository) Add(_ context.Context, _ *pallet.Box) error    { return nil }
func (m *MockBoxRepository) Update(_ context.Context, _ *pallet.Box) error { return nil }
func (m *MockBoxRepository) Get(_ context.Context, _ kernel.ID) (*pallet.Box, error) {
	return nil, nil
}

func (m *MockBoxRepository) GetAll(ctx context.Context) ([]*pallet.Box, error) {
	args := m.Called(ctx)
	boxes, _ := args.Get(0).([]*pallet.Box)
	return boxes, args.Error(1)
}

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) PalletRepository() ports.PalletRepository {
	args := m.Called()
	return args.Get(0).(ports.PalletRepository)
}

func (m *MockUnitOfWork) BoxRepository() ports.BoxRepository {
	args := m.Called()
	return args.Get(0).(ports.BoxRepository)
}

type MockUnitOfWorkFactory struct{ mock.Mock }

func (m *MockUnitOfWorkFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}
