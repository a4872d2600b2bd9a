package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	err := newCommand(&out).Run(context.Background(), append([]string{"mazegen"}, args...))
	require.NoError(t, err)
	return out.String()
}

func TestMazegen(t *testing.T) {
	t.Run("prints a finished maze", func(t *testing.T) {
		out := run(t, "--size", "4", "--seed", "3")
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		assert.Len(t, lines, 9)
		assert.Equal(t, "+---+---+---+---+", lines[0])
		assert.Equal(t, "+---+---+---+---+", lines[8])
	})

	t.Run("same seed same maze", func(t *testing.T) {
		assert.Equal(t, run(t, "-n", "8", "-s", "77"), run(t, "-n", "8", "-s", "77"))
	})

	t.Run("stats", func(t *testing.T) {
		out := run(t, "--size", "5", "--seed", "1", "--stats")
		assert.Contains(t, out, "size=5 steps=49 passages=24")
	})

	t.Run("animation ends on the final maze", func(t *testing.T) {
		animated := run(t, "--size", "3", "--seed", "2", "--animate", "--interval", "1ms")
		plain := run(t, "--size", "3", "--seed", "2")
		assert.True(t, strings.HasSuffix(animated, clearScreen+plain))
	})

	t.Run("invalid size", func(t *testing.T) {
		var out bytes.Buffer
		err := newCommand(&out).Run(context.Background(), []string{"mazegen", "--size", "0"})
		assert.Error(t, err)
	})
}
