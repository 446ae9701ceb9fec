package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MaskBoard/internal/export"
)

func TestLoadMissingWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maskboard", "config.toml")

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)

	_, err = os.Stat(path)
	require.NoError(t, err, "defaults written")

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), again)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[stage]
width = 640
height = 480

[style]
stroke = "red"

[keys]
close = "Return"

[export]
dir = "/tmp/masks"
raster_format = "tiff"

[session]
clear_on_image_load = true
`), 0o644))

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, conf.Stage.Width)
	assert.Equal(t, 2.0, conf.Stage.StrokeWidth, "unset keys keep defaults")
	assert.Equal(t, "red", conf.Style.Stroke)
	assert.Equal(t, Default().Style.Fill, conf.Style.Fill)
	assert.Equal(t, "Return", conf.Keys.Close)
	assert.Equal(t, "E", conf.Keys.Toggle)
	assert.Equal(t, export.TIFF, conf.Format())
	assert.True(t, conf.Session.ClearOnImageLoad)
	assert.False(t, conf.Feed.Enabled)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"syntax": "[stage\nwidth = ",
		"size":   "[stage]\nwidth = -1",
		"format": "[export]\nraster_format = \"jpeg\"",
		"port":   "[feed]\nenabled = true\nport = 70000",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestPath(t *testing.T) {
	assert.Equal(t, "config.toml", filepath.Base(Path()))
	assert.Equal(t, "maskboard", filepath.Base(Dir()))
}
