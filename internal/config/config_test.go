package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DoyleJ11/cricket-auction/internal/engine"
	"github.com/DoyleJ11/cricket-auction/internal/lobby"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestFromMap_Defaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 3500*time.Millisecond, cfg.AITick)
	assert.Equal(t, 25*time.Second, cfg.AutoResolve)
	assert.Equal(t, "120", cfg.Purse.String())

	rules := cfg.Rules()
	assert.Equal(t, 18, rules.RosterFloor)
	assert.Equal(t, 25, rules.RosterCeiling)
	assert.True(t, rules.RetentionEnabled)
	assert.Equal(t, "Indian", rules.Domestic)

	assert.Equal(t, lobby.DefaultTimings(), cfg.Timings())
	want := engine.DefaultRules()
	assert.True(t, want.Purse.Equal(rules.Purse))
	want.Purse = rules.Purse
	assert.Equal(t, want, rules)
}

func TestFromMap_Overrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"PURSE":             "90.5",
		"ROSTER_FLOOR":      "2",
		"ROSTER_CEILING":    "4",
		"RETENTION_ENABLED": "false",
		"AUTO_RESOLVE":      "2s",
		"FAIR_WARNING":      "500ms",
		"FINAL_WARNING":     "1s",
		"CATALOG_SIZE":      "40",
	})
	require.NoError(t, err)

	rules := cfg.Rules()
	assert.Equal(t, "90.5", rules.Purse.String())
	assert.Equal(t, 2, rules.RosterFloor)
	assert.False(t, rules.RetentionEnabled)

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Len(t, cat.Players, 40)
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	_, err := FromMap(map[string]string{
		"LOG_LEVEL":              "loud",
		"PURSE":                  "0",
		"ROSTER_FLOOR":           "30",
		"CAPACITY_UNSOLD_CHANCE": "1.5",
		"FAIR_WARNING":           "40s",
	})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
}

func TestFromMap_BadDuration(t *testing.T) {
	_, err := FromMap(map[string]string{"AI_TICK": "soon"})
	require.ErrorContains(t, err, "parse config")
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ROSTER_CEILING=11\n"), 0o600))
	t.Setenv("ROSTER_CEILING", "")
	require.NoError(t, os.Unsetenv("ROSTER_CEILING"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.RosterCeiling)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestLogger(t *testing.T) {
	cfg, err := FromMap(map[string]string{"APP_ENV": "production", "LOG_LEVEL": "warn"})
	require.NoError(t, err)
	log, err := cfg.Logger()
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
}
