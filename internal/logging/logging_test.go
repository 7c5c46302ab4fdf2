package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	_, err = ParseLevel("fatal")
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", "json")
	require.NoError(t, err)

	logger.Info("rendered", "bytes", 12)
	logger.Debug("hidden")
	assert.Contains(t, buf.String(), `"msg":"rendered"`)
	assert.NotContains(t, buf.String(), "hidden")

	_, err = New(&buf, "info", "xml")
	assert.Error(t, err)
}

func TestFromFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	RegisterFlags(cmd)
	require.NoError(t, cmd.PersistentFlags().Set("loglevel", "debug"))

	var buf bytes.Buffer
	logger, err := FromFlags(cmd, &buf)
	require.NoError(t, err)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
