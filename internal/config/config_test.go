package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/faultline.db", cfg.Database.Path)
	assert.Equal(t, "data/exports", cfg.Export.Dir)
	assert.Equal(t, "db.internal.local:5432", cfg.Probe.Addr)
	assert.Equal(t, 500000, cfg.Import.DefaultCount)
	assert.Equal(t, int64(512*1024*1024), cfg.Import.BudgetBytes)
	assert.Equal(t, 1000, cfg.Tree.MaxDepth)

	assert.Equal(t, 2*time.Second, cfg.ProbeTimeout())
	assert.Equal(t, 2*time.Second, cfg.QueryDeadline())
	assert.Equal(t, 10*time.Second, cfg.QueryDuration())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FAULTLINE_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("FAULTLINE_QUERY_DEADLINEMS", "250")
	t.Setenv("FAULTLINE_IMPORT_DEFAULTCOUNT", "1000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.QueryDeadline())
	assert.Equal(t, 1000, cfg.Import.DefaultCount)
}
