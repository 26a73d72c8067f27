package cmd

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"warehouse/internal/adapters/in/console"
	httpin "warehouse/internal/adapters/in/http"
	"warehouse/internal/adapters/in/seed"
	"warehouse/internal/adapters/out/storage"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/jobs"
	"warehouse/internal/pkg/logger"
	"warehouse/internal/pkg/metrics"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *storage.GormUnitOfWorkFactory
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, log *logger.Logger, m *metrics.Metrics) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: storage.NewGormUnitOfWorkFactory(gormDB),
		logger:     log,
		metrics:    m,
	}
}

func (c *CompositionRoot) CreateCreatePalletCommandHandler() commands.CreatePalletCommandHandler {
	var f commands.PalletUoWFactory = FuncPalletUoWFactory(func() commands.PalletUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePalletCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateBoxCommandHandler() commands.CreateBoxCommandHandler {
	var f commands.BoxUoWFactory = FuncBoxUoWFactory(func() commands.BoxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBoxCommandHandler(f)
}

func (c *CompositionRoot) CreateAddBoxToPalletCommandHandler() commands.AddBoxToPalletCommandHandler {
	return commands.NewAddBoxToPalletCommandHandler(c.funcUoWFactory())
}

func (c *CompositionRoot) CreateRemoveBoxFromPalletCommandHandler() commands.RemoveBoxFromPalletCommandHandler {
	return commands.NewRemoveBoxFromPalletCommandHandler(c.funcUoWFactory())
}

func (c *CompositionRoot) CreateSeedWarehouseCommandHandler() commands.SeedWarehouseCommandHandler {
	return commands.NewSeedWarehouseCommandHandler(c.funcUoWFactory())
}

func (c *CompositionRoot) CreateGetPalletsGroupedByExpirationQueryHandler() queries.GetPalletsGroupedByExpirationQueryHandler {
	return queries.NewGetPalletsGroupedByExpirationQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetTopPalletsByShelfLifeQueryHandler() queries.GetTopPalletsByShelfLifeQueryHandler {
	return queries.NewGetTopPalletsByShelfLifeQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetAllBoxesQueryHandler() queries.GetAllBoxesQueryHandler {
	return queries.NewGetAllBoxesQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateSeeder() seed.Seeder {
	handler := c.CreateSeedWarehouseCommandHandler()
	return seed.NewSeeder(&handler, c.logger.With("component", "seed"))
}

func (c *CompositionRoot) CreateReportPrinter() console.ReportPrinter {
	return console.NewReportPrinter(
		c.CreateGetPalletsGroupedByExpirationQueryHandler(),
		c.CreateGetTopPalletsByShelfLifeQueryHandler(),
		c.configs.ReportTopN,
	)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateCreatePalletCommandHandler(),
		c.CreateCreateBoxCommandHandler(),
		c.CreateAddBoxToPalletCommandHandler(),
		c.CreateRemoveBoxFromPalletCommandHandler(),
		c.CreateGetPalletsGroupedByExpirationQueryHandler(),
		c.CreateGetTopPalletsByShelfLifeQueryHandler(),
		c.CreateGetAllBoxesQueryHandler(),
		c.configs.ReportTopN,
		c.logger,
	)
	return httpin.NewRouter(server, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetPalletsGroupedByExpirationQueryHandler(),
		c.CreateGetAllBoxesQueryHandler(),
		c.metrics,
		c.configs.MetricsJobSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) funcUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncPalletUoWFactory func() commands.PalletUoW

func (f FuncPalletUoWFactory) Create() commands.PalletUoW {
	return f()
}

type FuncBoxUoWFactory func() commands.BoxUoW

func (f FuncBoxUoWFactory) Create() commands.BoxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
