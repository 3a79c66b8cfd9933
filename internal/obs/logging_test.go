package obs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fairyhunter13/product-stock-services/internal/config"
)

func TestInitLoggerWritesRotatedFile(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop().Sugar() })
	path := filepath.Join(t.TempDir(), "service.log")

	InitLogger(config.LogConfig{Mode: "production", File: path})
	Logger.Infow("product_saved", "product_id", 7)
	Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"product_saved"`)
	assert.Contains(t, string(b), `"product_id":7`)
}

func TestInitLoggerDevelopmentLevel(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop().Sugar() })
	InitLogger(config.LogConfig{Mode: "development"})
	assert.True(t, Logger.Desugar().Core().Enabled(zap.DebugLevel))

	InitLogger(config.LogConfig{Mode: "production"})
	assert.False(t, Logger.Desugar().Core().Enabled(zap.DebugLevel))
}
