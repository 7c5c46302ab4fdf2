// Package detector decomposes a rendered mosaic into per-cube face
// assignments using the remote cube-grid detector.
package detector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/logging"
	"github.com/SeamusWaldron/rubiksify/internal/remote"
)

// Detector decomposes a mosaic into cube records.
type Detector interface {
	Decompose(ctx context.Context, mosaic []byte, palette rubiksify.Palette) ([]rubiksify.CubeRecord, error)
}

// Client is the HTTP implementation of Detector.
type Client struct {
	remote   *remote.Client
	endpoint string
	logger   *slog.Logger
}

// NewClient creates a detector client for the given endpoint URL.
func NewClient(rc *remote.Client, endpoint string, logger *slog.Logger) *Client {
	return &Client{remote: rc, endpoint: endpoint, logger: logging.OrDiscard(logger)}
}

// ColorString encodes the palette as comma-joined RGB components in
// U, R, F, D, L, B order.
func ColorString(p rubiksify.Palette) string {
	return strings.Join(p.Components(rubiksify.Faces), ",")
}

// Decompose posts the mosaic and parses the detected cubes.
func (c *Client) Decompose(ctx context.Context, mosaic []byte, palette rubiksify.Palette) ([]rubiksify.CubeRecord, error) {
	if err := palette.Validate(); err != nil {
		return nil, err
	}

	data, err := c.remote.Post(ctx, c.endpoint, remote.EscapeQuery(ColorString(palette)), mosaic)
	if err != nil {
		return nil, fmt.Errorf("detect cubes: %w", err)
	}

	body := string(data)
	if err := remote.Sniff(body, "usage", "error"); err != nil {
		return nil, fmt.Errorf("detect cubes: %w", err)
	}

	cubes, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("detect cubes: %w", err)
	}

	w, h := rubiksify.GridExtent(cubes)
	c.logger.InfoContext(ctx, "cubes detected", "count", len(cubes), "width", w, "height", h)
	return cubes, nil
}
