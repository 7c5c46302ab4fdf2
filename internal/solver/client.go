// Package solver resolves cube definitions to generators through the remote
// cube solver, memoizing results per definition.
package solver

import (
	"context"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/remote"
)

// Solver returns the generator that turns a solved cube into defn.
type Solver interface {
	Solve(ctx context.Context, defn rubiksify.CubeDefn) (string, error)
}

// Client is the HTTP implementation of Solver. It does no caching.
type Client struct {
	remote   *remote.Client
	endpoint string
}

// NewClient creates a solver client for the given endpoint URL.
func NewClient(rc *remote.Client, endpoint string) *Client {
	return &Client{remote: rc, endpoint: endpoint}
}

// Solve issues GET endpoint?defn and returns the first line of the response.
func (c *Client) Solve(ctx context.Context, defn rubiksify.CubeDefn) (string, error) {
	data, err := c.remote.Get(ctx, c.endpoint, remote.EscapeQuery(string(defn)))
	if err != nil {
		return "", fmt.Errorf("solve %s: %w", defn, err)
	}

	body := string(data)
	if err := remote.Sniff(body, "fail"); err != nil {
		return "", fmt.Errorf("solve %s: %w", defn, err)
	}

	line, _, _ := strings.Cut(body, "\n")
	return strings.TrimSpace(line), nil
}
