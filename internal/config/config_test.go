package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	r, err := cfg.Recipe()
	require.NoError(t, err)
	assert.Equal(t, renderer.DitherFloydSteinberg, r.Dither)
	assert.Equal(t, 10, r.Width)
	assert.Equal(t, 10, r.Height)
	assert.Equal(t, 250, cfg.Concurrency)

	timeout, err := cfg.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, timeout)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoints:
  solver: http://localhost:8080/solve
width: 24
height: 16
dither: none
exactSize: true
concurrency: 8
timeout: 5s
palette:
  U: "#000000"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/solve", cfg.Endpoints.Solver)
	assert.Equal(t, DefaultRendererURL, cfg.Endpoints.Renderer)
	assert.Equal(t, 8, cfg.Concurrency)

	r, err := cfg.Recipe()
	require.NoError(t, err)
	assert.Equal(t, renderer.DitherNone, r.Dither)
	assert.Equal(t, 24, r.Width)
	assert.Equal(t, 16, r.Height)
	assert.True(t, r.ExactSize)
	assert.Equal(t, rubiksify.MustParseColor("#000000"), r.Palette[rubiksify.FaceU])
	assert.Equal(t, rubiksify.MustParseColor("#FFFFFF"), r.Palette[rubiksify.FaceD])

	timeout, err := cfg.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad dither":      "dither: blurry\n",
		"zero width":      "width: 0\n",
		"bad timeout":     "timeout: soon\n",
		"zero workers":    "concurrency: 0\n",
		"bad color":       "palette:\n  U: \"#GGGGGG\"\n",
		"bad endpoint":    "endpoints:\n  detector: ftp://example.com\n",
		"not yaml at all": "width: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			err := Parse([]byte(doc), Default())
			assert.ErrorIs(t, err, rubiksify.ErrValidation)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Width = 7

	data, err := cfg.Marshal()
	require.NoError(t, err)

	back := Default()
	require.NoError(t, Parse(data, back))
	assert.Equal(t, cfg, back)
}
