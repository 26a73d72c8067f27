// Package storage opens the relational database behind the warehouse and provides the
// GORM implementation of the Unit of Work.
//
// Two engines are supported:
//   - postgres through gorm.io/driver/postgres (pgx underneath)
//   - sqlite through gorm.io/driver/sqlite running on the pure-Go modernc.org/sqlite driver
//
// Usage Patterns:
//
//	db, err := storage.Open(cfg, log)
//	if err != nil {
//	    return err
//	}
//	if err := storage.Migrate(db); err != nil {
//	    return err
//	}
//	factory := storage.NewGormUnitOfWorkFactory(db)
package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"warehouse/internal/adapters/out/storage/palletrepo"
	"warehouse/internal/pkg/logger"
)

// Supported values of Config.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// sqliteDriverName is the database/sql name registered by modernc.org/sqlite.
const sqliteDriverName = "sqlite"

// ErrUnknownDriver is returned by Open for an unsupported Config.Driver.
var ErrUnknownDriver = errors.New("unknown database driver")

type Config struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		return SQLiteDSN(c.SQLitePath)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// SQLiteDSN builds a modernc sqlite DSN with foreign keys enforced. An empty path
// selects a private in-memory database.
func SQLiteDSN(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = ":memory:"
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Open connects to the configured database. SQL statements are logged through log:
// slow statements and errors at warn level, record-not-found is not logged.
func Open(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case DriverSQLite:
		dialector = sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: cfg.DSN()})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverSQLite {
		// sqlite serialises writers; one connection keeps an in-memory database alive
		// and avoids "database is locked" between concurrent transactions.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the pallets and boxes tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&palletrepo.PalletDTO{}, &palletrepo.BoxDTO{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Reset drops both tables. It is used before seeding a fresh warehouse.
func Reset(db *gorm.DB) error {
	if err := db.Migrator().DropTable(&palletrepo.BoxDTO{}, &palletrepo.PalletDTO{}); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}
	return nil
}

func newGormLogger(log *logger.Logger) gormLogger.Interface {
	return gormLogger.New(
		log.With("component", "gorm"),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
