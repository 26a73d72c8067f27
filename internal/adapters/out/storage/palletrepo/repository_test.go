package palletrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"warehouse/internal/adapters/out/storage"
	"warehouse/internal/adapters/out/storage/palletrepo"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/logger"
)

// RepositoryTestSuite exercises both repositories against a real database.
// The embedding test decides which engine backs db.
type RepositoryTestSuite struct {
	suite.Suite
	db      *gorm.DB
	tracker *palletrepo.IdentityMap
	pallets *palletrepo.GormPalletRepository
	boxes   *palletrepo.GormBoxRepository
}

func (s *RepositoryTestSuite) SetupTest() {
	s.Require().NoError(storage.Reset(s.db))
	s.Require().NoError(storage.Migrate(s.db))
	s.fresh()
}

// fresh drops every tracked object, as a new unit of work would.
func (s *RepositoryTestSuite) fresh() {
	s.tracker = palletrepo.NewIdentityMap()
	s.pallets = palletrepo.NewGormPalletRepository(s.db, s.tracker)
	s.boxes = palletrepo.NewGormBoxRepository(s.db, s.tracker)
}

func (s *RepositoryTestSuite) date(value string) *kernel.Date {
	d, err := kernel.ParseDate(value)
	s.Require().NoError(err)
	return &d
}

func (s *RepositoryTestSuite) storedBox(width, depth uint32, production, expire string) *pallet.Box {
	var productionDate, expireDate *kernel.Date
	if production != "" {
		productionDate = s.date(production)
	}
	if expire != "" {
		expireDate = s.date(expire)
	}
	box, err := pallet.NewBox(width, 20, depth, 500, productionDate, expireDate)
	s.Require().NoError(err)
	s.Require().NoError(s.boxes.Add(s.T().Context(), box))
	return box
}

func (s *RepositoryTestSuite) TestPalletAdd_AssignsID() {
	ctx := s.T().Context()
	p, err := pallet.NewPallet(120, 15, 80)
	s.Require().NoError(err)

	s.Require().NoError(s.pallets.Add(ctx, p))

	s.False(p.ID().IsZero())
	s.ErrorIs(s.pallets.Add(ctx, p), palletrepo.ErrAggregateIsAlreadyStored)

	s.fresh()
	loaded, err := s.pallets.Get(ctx, p.ID())
	s.Require().NoError(err)
	s.Equal(p.ID(), loaded.ID())
	s.Equal(uint32(120), loaded.Width())
	s.Equal(uint32(15), loaded.Height())
	s.Equal(uint32(80), loaded.Depth())
	s.False(loaded.HasBoxes())
}

func (s *RepositoryTestSuite) TestBoxAdd_RoundTripsDates() {
	ctx := s.T().Context()
	withProduction := s.storedBox(10, 10, "2023-11-15", "2024-02-20")
	defaulted := s.storedBox(10, 10, "2023-01-01", "")
	expireOnly := s.storedBox(10, 10, "", "2024-01-01")

	s.fresh()

	loaded, err := s.boxes.Get(ctx, withProduction.ID())
	s.Require().NoError(err)
	s.Equal("2023-11-15", loaded.ProductionDate().String())
	s.Equal("2024-02-20", loaded.ExpireDate().String())
	s.Equal(uint64(500), loaded.Weight())
	s.Nil(loaded.PalletID())

	loaded, err = s.boxes.Get(ctx, defaulted.ID())
	s.Require().NoError(err)
	s.Equal("2023-04-11", loaded.ExpireDate().String())

	loaded, err = s.boxes.Get(ctx, expireOnly.ID())
	s.Require().NoError(err)
	s.Nil(loaded.ProductionDate())
	s.Equal("2024-01-01", loaded.ExpireDate().String())
}

func (s *RepositoryTestSuite) TestPalletAdd_LinksCarriedBoxes() {
	ctx := s.T().Context()
	first := s.storedBox(50, 50, "", "2024-01-01")
	second := s.storedBox(60, 60, "", "2024-03-01")

	p, err := pallet.NewPallet(100, 15, 100)
	s.Require().NoError(err)
	s.Require().NoError(p.AddBox(first))
	s.Require().NoError(p.AddBox(second))
	s.Require().NoError(s.pallets.Add(ctx, p))

	s.fresh()
	loaded, err := s.pallets.Get(ctx, p.ID())
	s.Require().NoError(err)
	s.Require().Equal(2, loaded.BoxCount())
	s.Equal(first.ID(), loaded.Boxes()[0].ID())
	s.Equal(second.ID(), loaded.Boxes()[1].ID())
	for _, box := range loaded.Boxes() {
		s.Same(loaded, box.Pallet())
	}
	s.Equal("2024-01-01", loaded.ExpireDate().String())
}

func (s *RepositoryTestSuite) TestPalletAdd_RejectsUnstoredBox() {
	box, err := pallet.NewBox(10, 10, 10, 100, nil, s.date("2024-01-01"))
	s.Require().NoError(err)
	p, err := pallet.NewPallet(100, 15, 100)
	s.Require().NoError(err)
	s.Require().NoError(p.AddBox(box))

	err = s.pallets.Add(s.T().Context(), p)

	s.ErrorIs(err, palletrepo.ErrBoxIsNotStored)
}

func (s *RepositoryTestSuite) TestPalletUpdate_SynchronisesMembership() {
	ctx := s.T().Context()
	kept := s.storedBox(50, 50, "", "2024-01-01")
	removed := s.storedBox(50, 50, "", "2024-02-01")
	added := s.storedBox(50, 50, "", "2024-03-01")

	p, err := pallet.NewPallet(100, 15, 100)
	s.Require().NoError(err)
	s.Require().NoError(p.AddBox(kept))
	s.Require().NoError(p.AddBox(removed))
	s.Require().NoError(s.pallets.Add(ctx, p))

	s.fresh()
	loaded, err := s.pallets.Get(ctx, p.ID())
	s.Require().NoError(err)
	removedBox, err := s.boxes.Get(ctx, removed.ID())
	s.Require().NoError(err)
	addedBox, err := s.boxes.Get(ctx, added.ID())
	s.Require().NoError(err)

	loaded.RemoveBox(removedBox)
	s.Require().NoError(loaded.AddBox(addedBox))
	s.Require().NoError(s.pallets.Update(ctx, loaded))

	s.fresh()
	reloaded, err := s.pallets.Get(ctx, p.ID())
	s.Require().NoError(err)
	ids := make([]kernel.ID, 0, reloaded.BoxCount())
	for _, box := range reloaded.Boxes() {
		ids = append(ids, box.ID())
	}
	s.Equal([]kernel.ID{kept.ID(), added.ID()}, ids)

	detached, err := s.boxes.Get(ctx, removed.ID())
	s.Require().NoError(err)
	s.Nil(detached.PalletID())
}

func (s *RepositoryTestSuite) TestPalletUpdate_Errors() {
	ctx := s.T().Context()

	unstored, err := pallet.NewPallet(100, 15, 100)
	s.Require().NoError(err)
	s.ErrorIs(s.pallets.Update(ctx, unstored), palletrepo.ErrAggregateIsNotStored)

	missing, err := pallet.RestorePallet(999, 100, 15, 100, nil)
	s.Require().NoError(err)
	err = s.pallets.Update(ctx, missing)
	s.True(errs.IsNotFound(err))

	s.ErrorIs(s.pallets.Update(ctx, &pallet.Pallet{}), pallet.ErrPalletIsNotConstructed)
}

func (s *RepositoryTestSuite) TestBoxGet_AttachesOwningPallet() {
	ctx := s.T().Context()
	box := s.storedBox(50, 50, "", "2024-01-01")
	sibling := s.storedBox(50, 50, "", "2024-02-01")
	p, err := pallet.NewPallet(100, 15, 100)
	s.Require().NoError(err)
	s.Require().NoError(p.AddBox(box))
	s.Require().NoError(p.AddBox(sibling))
	s.Require().NoError(s.pallets.Add(ctx, p))

	s.fresh()
	loaded, err := s.boxes.Get(ctx, box.ID())
	s.Require().NoError(err)

	s.Require().NotNil(loaded.Pallet())
	s.Equal(p.ID(), *loaded.PalletID())
	s.Equal(2, loaded.Pallet().BoxCount())

	samePallet, err := s.pallets.Get(ctx, p.ID())
	s.Require().NoError(err)
	s.Same(loaded.Pallet(), samePallet)
	s.True(samePallet.Contains(loaded))
}

func (s *RepositoryTestSuite) TestGet_NotFound() {
	ctx := s.T().Context()

	_, err := s.pallets.Get(ctx, 42)
	s.True(errs.IsNotFound(err))

	_, err = s.boxes.Get(ctx, 42)
	s.True(errs.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestBoxUpdate() {
	ctx := s.T().Context()
	box := s.storedBox(50, 50, "", "2024-01-01")
	p, err := pallet.NewPallet(100, 15, 100)
	s.Require().NoError(err)
	s.Require().NoError(s.pallets.Add(ctx, p))

	s.Require().NoError(p.AddBox(box))
	s.Require().NoError(s.boxes.Update(ctx, box))

	s.fresh()
	loaded, err := s.boxes.Get(ctx, box.ID())
	s.Require().NoError(err)
	s.Equal(p.ID(), *loaded.PalletID())

	unstored, err := pallet.NewBox(1, 1, 1, 1, nil, s.date("2024-01-01"))
	s.Require().NoError(err)
	s.ErrorIs(s.boxes.Update(ctx, unstored), palletrepo.ErrAggregateIsNotStored)
}

func (s *RepositoryTestSuite) TestBoxAdd_RequiresStoredPallet() {
	ctx := s.T().Context()
	p, err := pallet.NewPallet(100, 15, 100)
	s.Require().NoError(err)
	box, err := pallet.NewBox(10, 10, 10, 100, nil, s.date("2024-01-01"))
	s.Require().NoError(err)
	s.Require().NoError(p.AddBox(box))

	s.ErrorIs(s.boxes.Add(ctx, box), palletrepo.ErrPalletIsNotStored)
}

func (s *RepositoryTestSuite) TestBoxAdd_ForeignKeyViolation() {
	ctx := s.T().Context()
	ghost, err := pallet.RestorePallet(999, 100, 15, 100, nil)
	s.Require().NoError(err)
	box, err := pallet.NewBox(10, 10, 10, 100, nil, s.date("2024-01-01"))
	s.Require().NoError(err)
	s.Require().NoError(ghost.AddBox(box))

	err = s.boxes.Add(ctx, box)

	s.Require().Error(err)
	s.True(errs.IsState(err), err.Error())
	s.True(box.ID().IsZero())
}

func (s *RepositoryTestSuite) TestGetAll_ReturnsConsistentSnapshot() {
	ctx := s.T().Context()
	onFirst := s.storedBox(50, 50, "", "2024-01-01")
	onSecond := s.storedBox(50, 50, "", "2024-02-01")
	loose := s.storedBox(50, 50, "", "2024-03-01")

	first, err := pallet.NewPallet(100, 15, 100)
	s.Require().NoError(err)
	s.Require().NoError(first.AddBox(onFirst))
	s.Require().NoError(s.pallets.Add(ctx, first))
	empty, err := pallet.NewPallet(80, 15, 80)
	s.Require().NoError(err)
	s.Require().NoError(s.pallets.Add(ctx, empty))
	second, err := pallet.NewPallet(120, 15, 120)
	s.Require().NoError(err)
	s.Require().NoError(second.AddBox(onSecond))
	s.Require().NoError(s.pallets.Add(ctx, second))

	s.fresh()
	pallets, err := s.pallets.GetAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(pallets, 3)
	s.Equal([]kernel.ID{first.ID(), empty.ID(), second.ID()},
		[]kernel.ID{pallets[0].ID(), pallets[1].ID(), pallets[2].ID()})
	s.Equal(1, pallets[0].BoxCount())
	s.Equal(0, pallets[1].BoxCount())
	s.Equal(1, pallets[2].BoxCount())

	boxes, err := s.boxes.GetAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(boxes, 3)
	s.Same(pallets[0], boxes[0].Pallet())
	s.Same(pallets[2], boxes[1].Pallet())
	s.Equal(loose.ID(), boxes[2].ID())
	s.Nil(boxes[2].Pallet())
}

func TestRepositorySQLite(t *testing.T) {
	db, err := storage.Open(storage.Config{Driver: storage.DriverSQLite}, logger.NewNop())
	require.NoError(t, err)

	suite.Run(t, &RepositoryTestSuite{db: db})
}
