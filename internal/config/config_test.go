package config

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/compose"
)

const yamlConfig = `
max_pixels: 1000000
padding: 2
separator: 4
supersample: 8
asset_dir: assets
font_dir: fonts
workers: 3
render_cache: 64
shadow:
  offset_x: 1
  offset_y: 3
  blur: 1.5
  color: "#00000080"
thumb:
  size: 128
  radius: 10
  offsets: offsets.toml
`

const tomlConfig = `
max_pixels = 1000000
padding = 2
separator = 4
supersample = 8
asset_dir = "assets"

[shadow]
offset_x = 1
offset_y = 3
blur = 1.5
color = "#00000080"

[thumb]
size = 128
`

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{"a.yaml": YAML, "b.YML": YAML, "c.toml": TOML} {
		got, err := FormatOf(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatOf("config.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeFormatsAgree(t *testing.T) {
	y, err := Decode(strings.NewReader(yamlConfig), YAML)
	require.NoError(t, err)
	tm, err := Decode(strings.NewReader(tomlConfig), TOML)
	require.NoError(t, err)

	for _, f := range []*File{y, tm} {
		c, err := f.Engine()
		require.NoError(t, err)
		assert.Equal(t, 1000000, c.MaxPixels)
		assert.Equal(t, 2, c.Padding)
		assert.Equal(t, 4, c.Separator)
		assert.Equal(t, 8, c.Supersample)
		assert.Equal(t, "assets", c.AssetDir)
		assert.Equal(t, image.Pt(1, 3), c.Shadow.Offset)
		assert.Equal(t, color.NRGBA{A: 0x80}, c.Shadow.Color)
		assert.Equal(t, 128, f.Thumb.Size)
	}
	assert.Equal(t, 64, y.RenderCache)
	assert.Equal(t, "offsets.toml", y.Thumb.Offsets)
}

func TestEngineDefaults(t *testing.T) {
	var f File
	c, err := f.Engine()
	require.NoError(t, err)
	assert.Equal(t, compose.DefaultConfig(), c)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
		msg    string
	}{
		{"yaml unknown key", YAML, "paddin: 2", "paddin"},
		{"toml unknown key", TOML, "[thumb]\nsise = 3", "thumb.sise"},
		{"negative padding", YAML, "padding: -1", "padding"},
		{"supersample range", TOML, "supersample = 32", "supersample"},
		{"nested thumb", YAML, "thumb: {radius: -2}", "thumb.radius"},
		{"shadow blur", YAML, "shadow: {blur: -1}", "shadow.blur"},
		{"yaml syntax", YAML, "padding: [", ""},
		{"toml type", TOML, "padding = \"wide\"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, compose.ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	_, err := Decode(strings.NewReader(""), Format("ini"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEngineBadShadowColor(t *testing.T) {
	f := File{Shadow: &Shadow{Color: "black"}}
	_, err := f.Engine()
	assert.ErrorIs(t, err, compose.ErrInvalidConfiguration)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "composer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fonts", f.FontDir)
	assert.Equal(t, 3, f.Workers)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	f, err = Load(empty)
	require.NoError(t, err)
	assert.Zero(t, *f)
}
