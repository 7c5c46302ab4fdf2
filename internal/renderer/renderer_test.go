package renderer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/remote"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testRecipe() Recipe {
	return Recipe{
		Dither:  DitherFloydSteinberg,
		Width:   10,
		Height:  4,
		Palette: rubiksify.DefaultPalette(),
	}
}

func TestColorString(t *testing.T) {
	r := testRecipe()
	assert.Equal(t,
		"FloydSteinberg;30x12;255,255,0;255,255,255;255,165,0;255,0,0;0,0,255;0,255,0",
		r.ColorString())

	r.ExactSize = true
	r.Dither = DitherNone
	assert.Equal(t,
		"None;30x12!;255,255,0;255,255,255;255,165,0;255,0,0;0,0,255;0,255,0",
		r.ColorString())
}

func TestParseDither(t *testing.T) {
	d, err := ParseDither("riemersma")
	require.NoError(t, err)
	assert.Equal(t, DitherRiemersma, d)

	d, err = ParseDither("Floyd-Steinberg")
	require.NoError(t, err)
	assert.Equal(t, DitherFloydSteinberg, d)

	_, err = ParseDither("ordered")
	assert.ErrorIs(t, err, rubiksify.ErrValidation)
}

func TestRecipeValidateAndEqual(t *testing.T) {
	r := testRecipe()
	require.NoError(t, r.Validate())

	bad := r
	bad.Width = 0
	assert.ErrorIs(t, bad.Validate(), rubiksify.ErrValidation)

	clone := r.Clone()
	assert.True(t, r.Equal(clone))
	clone.Palette[rubiksify.FaceU] = rubiksify.Color{}
	assert.False(t, r.Equal(clone))
	assert.True(t, r.Equal(testRecipe()), "clone must not share the palette")
}

func TestRender(t *testing.T) {
	mosaic := pngBytes(t, 30, 12)
	var gotQuery string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery, _ = url.QueryUnescape(r.URL.RawQuery)
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write(mosaic)
	}))
	defer srv.Close()

	c := NewClient(remote.NewClient(), srv.URL, nil)
	got, err := c.Render(context.Background(), []byte("source"), testRecipe())
	require.NoError(t, err)

	assert.Equal(t, testRecipe().ColorString(), gotQuery)
	assert.Equal(t, []byte("source"), gotBody)
	assert.Equal(t, "png", got.Format)
	assert.Equal(t, 30, got.Width)
	assert.Equal(t, 12, got.Height)
	assert.Equal(t, mosaic, got.Data)
}

func TestRenderRejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("convert: unable to open image"))
	}))
	defer srv.Close()

	_, err := NewClient(remote.NewClient(), srv.URL, nil).Render(context.Background(), []byte("x"), testRecipe())
	assert.ErrorIs(t, err, rubiksify.ErrProtocol)
}

func TestRenderHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(remote.NewClient(), srv.URL, nil).Render(context.Background(), []byte("x"), testRecipe())
	assert.ErrorIs(t, err, rubiksify.ErrTransport)
}

func TestInspect(t *testing.T) {
	m, err := Inspect(pngBytes(t, 9, 6))
	require.NoError(t, err)
	assert.Equal(t, 9, m.Width)
	assert.Equal(t, 6, m.Height)

	_, err = Inspect(nil)
	assert.ErrorIs(t, err, rubiksify.ErrValidation)
	_, err = Inspect([]byte("not an image"))
	assert.ErrorIs(t, err, rubiksify.ErrValidation)
}
