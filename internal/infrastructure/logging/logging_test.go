package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starfleet-go/internal/infrastructure/config"
	"github.com/andrescamacho/starfleet-go/internal/infrastructure/logging"
)

func TestNew_RotatingFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starfleet.log")
	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
		Rotation: config.RotationConfig{Enabled: true, MaxSize: 1},
		Service:  "starfleet",
	}

	logger, cleanup, err := logging.New(cfg)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("ship created")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"ship created"`)
	assert.Contains(t, string(data), `"service":"starfleet"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, _, err := logging.New(config.LoggingConfig{Level: "loud", Format: "json", Output: "stdout"})

	assert.Error(t, err)
}
