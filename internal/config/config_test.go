package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesolver"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Address)
	assert.Equal(t, cubesolver.DefaultMaxRotations, cfg.Solver.MaxRotations)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubesolver.yaml")
	data := `
server:
  address: "127.0.0.1:9000"
  read_timeout: 2s
solver:
  max_rotations: 300
cache:
  url: redis://localhost:6379/0
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("CUBESOLVER_SOLVER_MAX_ROTATIONS", "250")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 250, cfg.Solver.MaxRotations, "environment beats the file")
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ok := Config{Storage: StorageConfig{Driver: "sqlite"}, Solver: SolverConfig{MaxRotations: 1}}
	assert.NoError(t, ok.Validate())

	pg := ok
	pg.Storage.Driver = "postgres"
	assert.Error(t, pg.Validate())
	pg.Storage.DSN = "postgres://localhost/cubes"
	assert.NoError(t, pg.Validate())

	bad := ok
	bad.Storage.Driver = "mysql"
	assert.Error(t, bad.Validate())

	fuse := ok
	fuse.Solver.MaxRotations = 0
	assert.Error(t, fuse.Validate())
}
