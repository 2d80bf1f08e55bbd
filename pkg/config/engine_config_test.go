package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEngineConfig_OverlaysDefaults(t *testing.T) {
	cfg, err := ParseEngineConfig([]byte(`
[window]
title = "demo"
width = 800

[logging]
level = "debug"

[camera]
radius = 20.0
`))
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset field keeps its default")
	assert.Equal(t, 60, cfg.Window.TPS)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, float32(20), cfg.Camera.Radius)
	assert.Equal(t, float32(45), cfg.Camera.Pitch)
	assert.Equal(t, "assets/manifest.yaml", cfg.Assets.Manifest)
	assert.Equal(t, 30, cfg.Scene.FadeFrames)
}

func TestParseEngineConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"syntax":      `[window`,
		"zero width":  "[window]\nwidth = 0",
		"zero tps":    "[window]\ntps = 0",
		"follow rate": "[camera]\nfollow_rate = 2.0",
		"move frames": "[player]\nmove_frames = -1",
		"fade frames": "[scene]\nfade_frames = 0",
		"ease":        "[player]\nease = \"bounce\"",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseEngineConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadEngineConfig(t *testing.T) {
	fsys := fstest.MapFS{"config/engine.toml": {Data: []byte("[debug]\nstart_paused = true\n")}}
	cfg, err := LoadEngineConfig(fsys, "config/engine.toml")
	require.NoError(t, err)
	assert.True(t, cfg.Debug.StartPaused)
	assert.True(t, cfg.Debug.Enabled)

	_, err = LoadEngineConfig(fsys, "missing.toml")
	assert.Error(t, err)
}

func TestDefaultAspect(t *testing.T) {
	assert.InDelta(t, 16.0/9.0, Default().Window.Aspect(), 1e-6)
}
