package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadServer(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServer(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadServerOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
http:
  port: 9090
zones:
  source: database
gamemode:
  tick_rate: 100ms
  capture_scale: 10
  max_ui_flags: 6
  debug: true
`), 0o644))

	cfg, err := LoadServer(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, ZoneSourceDatabase, cfg.Zones.Source)
	assert.Equal(t, 100*time.Millisecond, cfg.Gamemode.TickRate)
	assert.Equal(t, 10.0, cfg.Gamemode.CaptureScale)
	assert.Equal(t, 6, cfg.Gamemode.MaxUIFlags)
	assert.True(t, cfg.Gamemode.Debug)
	// untouched keys keep their defaults
	assert.Equal(t, 4, cfg.Gamemode.EvaluateEveryTicks)
	assert.Equal(t, "frontline", cfg.Database.DBName)
}

func TestLoadServerRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gamemode:\n  min_flags: 2\n  max_ui_flags: 3\n"), 0o644))

	_, err := LoadServer(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_ui_flags")

	require.NoError(t, os.WriteFile(path, []byte("gamemode: [oops"), 0o644))
	_, err = LoadServer(path)
	require.Error(t, err)
}

func TestGamemodeValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Gamemode)
		ok     bool
	}{
		{"defaults", func(*Gamemode) {}, true},
		{"zero tick rate", func(g *Gamemode) { g.TickRate = 0 }, false},
		{"zero evaluation cadence", func(g *Gamemode) { g.EvaluateEveryTicks = 0 }, false},
		{"negative staging", func(g *Gamemode) { g.StagingTicks = -1 }, false},
		{"zero capture scale", func(g *Gamemode) { g.CaptureScale = 0 }, false},
		{"zero capper difference", func(g *Gamemode) { g.RequiredCapperDifference = 0 }, false},
		{"min flags below floor", func(g *Gamemode) { g.MinFlags, g.MaxUIFlags = 2, 6 }, true},
		{"negative min flags", func(g *Gamemode) { g.MinFlags = -1 }, false},
		{"max below floor", func(g *Gamemode) { g.MinFlags, g.MaxUIFlags = 2, 3 }, false},
		{"max below min", func(g *Gamemode) { g.MinFlags, g.MaxUIFlags = 6, 5 }, false},
		{"min equals max", func(g *Gamemode) { g.MinFlags, g.MaxUIFlags = 6, 6 }, true},
		{"no rotation attempts", func(g *Gamemode) { g.RotationAttempts = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := DefaultGamemode()
			tt.mutate(&g)
			if tt.ok {
				assert.NoError(t, g.Validate())
			} else {
				assert.Error(t, g.Validate())
			}
		})
	}
}

func TestServerValidateZoneSource(t *testing.T) {
	cfg := DefaultServer()
	cfg.Zones.Source = "ftp"
	assert.Error(t, cfg.Validate())

	cfg.Zones.Source = ZoneSourceFile
	cfg.Zones.File = ""
	assert.Error(t, cfg.Validate())
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, "config/frontline.yaml", ResolvePath("config/frontline.yaml"))

	t.Setenv(EnvConfigPath, "/etc/frontline.yaml")
	assert.Equal(t, "/etc/frontline.yaml", ResolvePath("config/frontline.yaml"))
}
