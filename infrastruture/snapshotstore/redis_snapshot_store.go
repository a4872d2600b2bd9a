// Package snapshotstore caches live maze snapshots in Redis.
package snapshotstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix  = "mazegen"
	snapshotKeyFmt = "%s:snapshot:%s"
	lockExpiry     = 2 * time.Second
)

// entry is the cached value: a snapshot tagged with the run it belongs to.
type entry struct {
	Run      int           `json:"run"`
	Snapshot maze.Snapshot `json:"snapshot"`
}

// supersedes reports whether e should replace cur.
func (e entry) supersedes(cur entry) bool {
	if e.Run != cur.Run {
		return e.Run > cur.Run
	}
	return e.Snapshot.Steps >= cur.Snapshot.Steps
}

// RedisSnapshotStore keeps the most advanced snapshot of each maze in Redis
// with a TTL. Writes take a redsync lock so concurrent writers cannot move a
// cached maze backwards.
type RedisSnapshotStore struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
}

var _ i.SnapshotStore = &RedisSnapshotStore{}

// NewRedisSnapshotStore initializes a RedisSnapshotStore with the provided Redis client and TTL.
func NewRedisSnapshotStore(client *redis.Client, prefix string, ttl time.Duration) (*RedisSnapshotStore, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	if prefix == "" {
		prefix = defaultPrefix
	}

	return &RedisSnapshotStore{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

// Save stores s for the given run unless the cache already holds a snapshot
// that is further along.
func (r *RedisSnapshotStore) Save(ctx context.Context, id uuid.UUID, run int, s maze.Snapshot) error {
	key := r.key(id)
	mutex := r.locker.NewMutex(key+":lock", redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("locking %s: %w", key, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	next := entry{Run: run, Snapshot: s}
	cur, err := r.load(ctx, key)
	switch {
	case err == nil:
		if !next.supersedes(cur) {
			return nil
		}
	case !errors.Is(err, i.ErrSnapshotNotFound):
		return err
	}

	payload, err := json.Marshal(next)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, payload, r.ttl).Err()
}

// Load returns the cached snapshot of a maze.
func (r *RedisSnapshotStore) Load(ctx context.Context, id uuid.UUID) (maze.Snapshot, error) {
	e, err := r.load(ctx, r.key(id))
	if err != nil {
		return maze.Snapshot{}, err
	}
	return e.Snapshot, nil
}

// Delete removes the cached snapshot of a maze.
func (r *RedisSnapshotStore) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

func (r *RedisSnapshotStore) load(ctx context.Context, key string) (entry, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entry{}, i.ErrSnapshotNotFound
	}
	if err != nil {
		return entry{}, err
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return entry{}, fmt.Errorf("decoding %s: %w", key, err)
	}
	return e, nil
}

func (r *RedisSnapshotStore) key(id uuid.UUID) string {
	return fmt.Sprintf(snapshotKeyFmt, r.prefix, id)
}
