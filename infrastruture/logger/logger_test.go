package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogger(t *testing.T) {
	t.Run("nil writer", func(t *testing.T) {
		l, err := New("APP", "\033[32m", nil)
		assert.ErrorIs(t, err, ErrNilWriter)
		assert.Nil(t, l)
	})

	t.Run("prefix and levels", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("MAZE", "\033[36m", &buf)
		require.NoError(t, err)

		l.Info("maze created")
		l.Warning("cache miss")
		l.Error("archive failed")
		l.With(zap.String("maze_id", "abc")).Debug("step")
		require.NoError(t, l.Sync())

		out := buf.String()
		assert.Contains(t, out, "[MAZE]")
		assert.Contains(t, out, "maze created")
		assert.Contains(t, out, "cache miss")
		assert.Contains(t, out, "archive failed")
		assert.Contains(t, out, "WARN")
		assert.Contains(t, out, `"maze_id": "abc"`)
	})

	t.Run("nop", func(t *testing.T) {
		l := Nop()
		assert.NotPanics(t, func() { l.Info("ignored") })
	})
}
