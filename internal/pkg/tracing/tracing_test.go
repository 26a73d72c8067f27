package tracing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/pkg/logger"
	"warehouse/internal/pkg/tracing"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := tracing.Init(t.Context(), logger.NewNop(), tracing.Config{})

	require.NoError(t, err)
	assert.NoError(t, shutdown(t.Context()))
}

func TestInit_Enabled(t *testing.T) {
	shutdown, err := tracing.Init(t.Context(), logger.NewNop(), tracing.Config{
		Enabled:     true,
		Environment: "test",
	})

	require.NoError(t, err)
	assert.NoError(t, shutdown(t.Context()))
}
