package snapshotstore

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntrySupersedes(t *testing.T) {
	at := func(run, steps int) entry {
		return entry{Run: run, Snapshot: maze.Snapshot{Steps: steps}}
	}

	tests := []struct {
		name string
		next entry
		cur  entry
		want bool
	}{
		{"later step same run", at(0, 5), at(0, 4), true},
		{"same step same run", at(0, 5), at(0, 5), true},
		{"earlier step same run", at(0, 3), at(0, 4), false},
		{"new run after reset", at(1, 0), at(0, 99), true},
		{"stale run", at(0, 99), at(1, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.next.supersedes(tt.cur))
		})
	}
}

func TestEntryEncoding(t *testing.T) {
	g, err := maze.NewGenerator(3, maze.WithSeed(4))
	require.NoError(t, err)
	require.NoError(t, g.Start())
	s, err := g.Step()
	require.NoError(t, err)

	raw, err := json.Marshal(entry{Run: 2, Snapshot: s})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"state":"running"`)
	assert.Contains(t, string(raw), `"kind":"carve"`)

	var decoded entry
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 2, decoded.Run)
	assert.Equal(t, s, decoded.Snapshot)
}

func TestNewRedisSnapshotStore(t *testing.T) {
	_, err := NewRedisSnapshotStore(nil, "", time.Minute)
	assert.Error(t, err)

	store, err := NewRedisSnapshotStore(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "", time.Minute)
	require.NoError(t, err)
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	assert.Equal(t, "mazegen:snapshot:00000000-0000-0000-0000-000000000001", store.key(id))
}

// TestRedisSnapshotStore runs against a real server when REDIS_TEST_ADDR is set.
func TestRedisSnapshotStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedisSnapshotStore(client, "mazegen-test", time.Minute)
	require.NoError(t, err)

	id := uuid.New()
	t.Cleanup(func() { _ = store.Delete(ctx, id) })

	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, i.ErrSnapshotNotFound)

	g, err := maze.NewGenerator(4, maze.WithSeed(1))
	require.NoError(t, err)
	require.NoError(t, g.Start())
	first, err := g.Step()
	require.NoError(t, err)
	second, err := g.Step()
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, id, 0, second))
	require.NoError(t, store.Save(ctx, id, 0, first))

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, second, got, "older snapshot must not replace newer")

	g.Reset()
	require.NoError(t, store.Save(ctx, id, 1, g.Snapshot()))
	got, err = store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, maze.Idle, got.State)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, i.ErrSnapshotNotFound)
}
