package renderer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/logging"
	"github.com/SeamusWaldron/rubiksify/internal/remote"
)

// Mosaic is a rendered mosaic image.
type Mosaic struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// Renderer produces mosaics from source images.
type Renderer interface {
	Render(ctx context.Context, image []byte, recipe Recipe) (*Mosaic, error)
}

// Client is the HTTP implementation of Renderer.
type Client struct {
	remote   *remote.Client
	endpoint string
	logger   *slog.Logger
}

// NewClient creates a renderer client for the given endpoint URL.
func NewClient(rc *remote.Client, endpoint string, logger *slog.Logger) *Client {
	return &Client{remote: rc, endpoint: endpoint, logger: logging.OrDiscard(logger)}
}

// Render posts the image and returns the mosaic the renderer sends back.
func (c *Client) Render(ctx context.Context, img []byte, recipe Recipe) (*Mosaic, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("%w: empty source image", rubiksify.ErrValidation)
	}

	data, err := c.remote.Post(ctx, c.endpoint, remote.EscapeQuery(recipe.ColorString()), img)
	if err != nil {
		return nil, fmt.Errorf("render mosaic: %w", err)
	}

	mosaic, err := Inspect(data)
	if err != nil {
		return nil, fmt.Errorf("%w: renderer returned a non-image payload: %v", rubiksify.ErrProtocol, err)
	}

	w, h := recipe.PixelSize()
	if recipe.ExactSize && (mosaic.Width != w || mosaic.Height != h) {
		c.logger.WarnContext(ctx, "mosaic size differs from exact request",
			"want", fmt.Sprintf("%dx%d", w, h),
			"got", fmt.Sprintf("%dx%d", mosaic.Width, mosaic.Height))
	}
	c.logger.InfoContext(ctx, "mosaic rendered", "format", mosaic.Format, "width", mosaic.Width, "height", mosaic.Height)
	return mosaic, nil
}

// Inspect decodes the image header and reports its format and dimensions.
func Inspect(data []byte) (*Mosaic, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", rubiksify.ErrValidation)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image: %v", rubiksify.ErrValidation, err)
	}
	return &Mosaic{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
