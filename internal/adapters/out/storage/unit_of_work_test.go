package storage_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"warehouse/internal/adapters/out/storage"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
	"warehouse/internal/pkg/logger"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	db      *gorm.DB
	factory *storage.GormUnitOfWorkFactory
}

func (s *UnitOfWorkTestSuite) SetupSuite() {
	db, err := storage.Open(storage.Config{Driver: storage.DriverSQLite}, logger.NewNop())
	s.Require().NoError(err)
	s.db = db
	s.factory = storage.NewGormUnitOfWorkFactory(db)
}

func (s *UnitOfWorkTestSuite) SetupTest() {
	s.Require().NoError(storage.Reset(s.db))
	s.Require().NoError(storage.Migrate(s.db))
}

func (s *UnitOfWorkTestSuite) newBox(expire string) *pallet.Box {
	date, err := kernel.ParseDate(expire)
	s.Require().NoError(err)
	box, err := pallet.NewBox(40, 20, 40, 1000, nil, &date)
	s.Require().NoError(err)
	return box
}

func (s *UnitOfWorkTestSuite) TestCommit_PersistsChanges() {
	ctx := s.T().Context()
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer uow.Rollback(ctx)

	box := s.newBox("2024-01-01")
	s.Require().NoError(uow.BoxRepository().Add(ctx, box))
	p, err := pallet.NewPallet(100, 15, 100)
	s.Require().NoError(err)
	s.Require().NoError(p.AddBox(box))
	s.Require().NoError(uow.PalletRepository().Add(ctx, p))
	s.Require().NoError(uow.Commit(ctx))

	reader := s.factory.Create()
	loaded, err := reader.PalletRepository().Get(ctx, p.ID())
	s.Require().NoError(err)
	s.Equal(1, loaded.BoxCount())
	s.Equal(box.ID(), loaded.Boxes()[0].ID())
}

func (s *UnitOfWorkTestSuite) TestRollback_DiscardsChanges() {
	ctx := s.T().Context()
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))

	p, err := pallet.NewPallet(100, 15, 100)
	s.Require().NoError(err)
	s.Require().NoError(uow.PalletRepository().Add(ctx, p))
	s.Require().NoError(uow.Rollback(ctx))

	all, err := s.factory.Create().PalletRepository().GetAll(ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *UnitOfWorkTestSuite) TestRepositoriesShareIdentity() {
	ctx := s.T().Context()
	setup := s.factory.Create()
	box := s.newBox("2024-01-01")
	s.Require().NoError(setup.BoxRepository().Add(ctx, box))
	p, err := pallet.NewPallet(100, 15, 100)
	s.Require().NoError(err)
	s.Require().NoError(p.AddBox(box))
	s.Require().NoError(setup.PalletRepository().Add(ctx, p))

	uow := s.factory.Create().(*storage.GormUnitOfWork)
	s.Require().NoError(uow.Begin(ctx))
	defer uow.Rollback(ctx)

	loadedPallet, err := uow.PalletRepository().Get(ctx, p.ID())
	s.Require().NoError(err)
	loadedBox, err := uow.BoxRepository().Get(ctx, box.ID())
	s.Require().NoError(err)

	s.Same(loadedPallet, loadedBox.Pallet())
	s.Equal(2, uow.TrackedCount())
	s.ErrorIs(loadedPallet.AddBox(loadedBox), pallet.ErrBoxIsAlreadyOnPallet)

	s.Require().NoError(uow.Commit(ctx))
	s.Equal(0, uow.TrackedCount())
}

func (s *UnitOfWorkTestSuite) TestBegin_IsIdempotent() {
	ctx := s.T().Context()
	uow := s.factory.Create()

	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Commit(ctx))
}

func (s *UnitOfWorkTestSuite) TestCommitAndRollback_WithoutTransaction() {
	ctx := s.T().Context()
	uow := s.factory.Create()

	s.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	s.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Commit(ctx))
	s.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
