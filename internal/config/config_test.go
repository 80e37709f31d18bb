package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/silic/internal/kv"
	"github.com/matthewbaird/silic/internal/types"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATA_URL", "DATA_PATH", "LANDLORD_POLICY", "KV_DRIVER", "SEED_COUNT"} {
		t.Setenv(k, "")
	}
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, types.PolicyStrict, cfg.Policy)
	assert.Equal(t, kv.DriverMemory, cfg.KV.Driver)
	assert.Equal(t, 100, cfg.SeedCount)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle)
	assert.Empty(t, cfg.DataSource)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9090\nDATA_PATH=/srv/dados-sap.json\nKV_DRIVER=sqlite\n"), 0o644))
	// godotenv never overrides variables that exist, even empty ones.
	for _, k := range []string{"PORT", "DATA_PATH", "DATA_URL", "KV_DRIVER"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("LANDLORD_POLICY", "lenient")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5m")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/srv/dados-sap.json", cfg.DataSource)
	assert.Equal(t, types.PolicyLenient, cfg.Policy)
	assert.Equal(t, kv.DriverSQLite, cfg.KV.Driver)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdle)

	t.Setenv("DATA_URL", "https://example.org/dados-sap.json")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/dados-sap.json", cfg.DataSource, "URL wins over path")
}

func TestLoad_RejectsBadPolicy(t *testing.T) {
	t.Setenv("LANDLORD_POLICY", "always")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "LANDLORD_POLICY")
}
