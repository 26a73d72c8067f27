package cmd_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/cmd"
	"warehouse/internal/adapters/in/seed"
	"warehouse/internal/adapters/out/storage"
	"warehouse/internal/pkg/logger"
	"warehouse/internal/pkg/metrics"
)

func newCompositionRoot(t *testing.T) cmd.CompositionRoot {
	t.Helper()

	configs := cmd.Config{DBDriver: storage.DriverSQLite, ReportTopN: 3}
	gormDB, err := storage.Open(configs.Storage(), logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(gormDB))

	return cmd.NewCompositionRoot(configs, gormDB, logger.NewNop(), metrics.New())
}

func TestCompositionRoot_SeedAndPrint(t *testing.T) {
	app := newCompositionRoot(t)

	dataset, err := seed.Demo()
	require.NoError(t, err)

	seeder := app.CreateSeeder()
	result, err := seeder.Seed(t.Context(), dataset)
	require.NoError(t, err)
	assert.Len(t, result.PalletIDs, 12)
	assert.Len(t, result.BoxIDs, 20)

	var out bytes.Buffer
	printer := app.CreateReportPrinter()
	require.NoError(t, printer.Print(t.Context(), &out))

	assert.Contains(t, out.String(), "Expires: 2023-12-05")
	assert.Contains(t, out.String(), "Top 3 pallets with the longest shelf life (ascending volume):")
}

func TestCompositionRoot_Router(t *testing.T) {
	app := newCompositionRoot(t)

	router, err := app.CreateRouter()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/boxes", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCompositionRoot_JobManager(t *testing.T) {
	app := newCompositionRoot(t)

	manager := app.CreateJobManager()
	require.NoError(t, manager.StartAll(t.Context()))
	manager.StopAll(t.Context())
}
