package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/google/uuid"
)

const (
	// MazeIDClaim is the token claim naming the maze a token may mutate.
	MazeIDClaim = "mazeID"

	defaultMaxMazeSize = 64
	defaultTokenTTL    = 24 * time.Hour
	storeTimeout       = 2 * time.Second
	maxArchiveListing  = 50
)

var (
	ErrSessionNotFound  = errors.New("maze session not found")
	ErrMazeTooLarge     = errors.New("maze dimension exceeds the configured maximum")
	ErrMissingTokenizer = errors.New("tokenizer is required")
	ErrMissingLogger    = errors.New("logger is required")
)

// session is one live generator. Its mutex is the serialization the
// generator requires from its callers.
type session struct {
	info     dmn.MazeSession
	gen      *maze.Generator
	run      int
	archived bool
	sync.Mutex
}

// Config holds the dependencies of MazeSessions. Cache and Repo are optional.
type Config struct {
	MaxSize   int
	TokenTTL  time.Duration
	Tokenizer i.Tokenizer
	Cache     i.SnapshotStore
	Repo      i.MazeRepo
	Logger    i.Logger
}

// MazeSessions keeps live generators in memory, mirrors every change to the
// snapshot cache and archives each completed maze.
type MazeSessions struct {
	maxSize   int
	tokenTTL  time.Duration
	tokenizer i.Tokenizer
	cache     i.SnapshotStore
	repo      i.MazeRepo
	logger    i.Logger
	sessions  map[uuid.UUID]*session
	sync.RWMutex
}

var _ i.MazeSessions = &MazeSessions{}

// NewMazeSessions creates a session manager.
func NewMazeSessions(c *Config) (*MazeSessions, error) {
	if c.Tokenizer == nil {
		return nil, ErrMissingTokenizer
	}
	if c.Logger == nil {
		return nil, ErrMissingLogger
	}

	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxMazeSize
	}
	tokenTTL := c.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}

	return &MazeSessions{
		maxSize:   maxSize,
		tokenTTL:  tokenTTL,
		tokenizer: c.Tokenizer,
		cache:     c.Cache,
		repo:      c.Repo,
		logger:    c.Logger,
		sessions:  make(map[uuid.UUID]*session),
	}, nil
}

// Create builds an idle maze and a token for mutating it.
func (m *MazeSessions) Create(ctx context.Context, size int, seed *int64) (dmn.MazeSession, string, error) {
	if size > m.maxSize {
		return dmn.MazeSession{}, "", fmt.Errorf("%w: %d > %d", ErrMazeTooLarge, size, m.maxSize)
	}

	var s int64
	if seed != nil {
		s = *seed
	} else {
		s = rand.Int63()
	}

	gen, err := maze.NewGenerator(size, maze.WithSeed(s))
	if err != nil {
		return dmn.MazeSession{}, "", err
	}

	info := dmn.MazeSession{
		ID:        uuid.New(),
		Size:      size,
		Seed:      s,
		CreatedAt: time.Now().UTC(),
	}

	token, err := m.tokenizer.Generate(map[string]interface{}{
		MazeIDClaim: info.ID.String(),
	}, m.tokenTTL)
	if err != nil {
		return dmn.MazeSession{}, "", fmt.Errorf("issuing maze token: %w", err)
	}

	sess := &session{info: info, gen: gen}
	m.Lock()
	m.sessions[info.ID] = sess
	m.Unlock()

	m.cacheSnapshot(ctx, sess, gen.Snapshot())
	m.logger.Info(fmt.Sprintf("Maze created: ID=%s Size=%d Seed=%d", info.ID, size, s))
	return info, token, nil
}

// Start begins the traversal of a maze.
func (m *MazeSessions) Start(ctx context.Context, id uuid.UUID) (maze.Snapshot, error) {
	return m.mutate(ctx, id, func(s *session) (maze.Snapshot, error) {
		if err := s.gen.Start(); err != nil {
			return maze.Snapshot{}, err
		}
		return s.gen.Snapshot(), nil
	})
}

// Step advances a maze by one carve or backtrack.
func (m *MazeSessions) Step(ctx context.Context, id uuid.UUID) (maze.Snapshot, error) {
	return m.mutate(ctx, id, func(s *session) (maze.Snapshot, error) {
		return s.gen.Step()
	})
}

// Run finishes a started maze.
func (m *MazeSessions) Run(ctx context.Context, id uuid.UUID) (maze.Snapshot, error) {
	return m.mutate(ctx, id, func(s *session) (maze.Snapshot, error) {
		return s.gen.RunToCompletion()
	})
}

// Reset returns a maze to idle with all walls standing.
func (m *MazeSessions) Reset(ctx context.Context, id uuid.UUID) (maze.Snapshot, error) {
	return m.mutate(ctx, id, func(s *session) (maze.Snapshot, error) {
		s.gen.Reset()
		s.run++
		s.archived = false
		return s.gen.Snapshot(), nil
	})
}

// Snapshot returns the live state when this instance holds the maze, else the
// cached state, else the archived one.
func (m *MazeSessions) Snapshot(ctx context.Context, id uuid.UUID) (maze.Snapshot, error) {
	if s, ok := m.session(id); ok {
		s.Lock()
		defer s.Unlock()
		return s.gen.Snapshot(), nil
	}

	if m.cache != nil {
		snap, err := m.cache.Load(ctx, id)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, i.ErrSnapshotNotFound) {
			m.logger.Warning(fmt.Sprintf("Loading cached snapshot: ID=%s: %s", id, err))
		}
	}

	if m.repo != nil {
		record, err := m.repo.ByID(ctx, id)
		if err == nil {
			return record.Snapshot(), nil
		}
		if !errors.Is(err, i.ErrMazeNotFound) {
			m.logger.Warning(fmt.Sprintf("Loading archived maze: ID=%s: %s", id, err))
		}
	}

	return maze.Snapshot{}, ErrSessionNotFound
}

// Delete drops the live maze and its cached and archived copies.
func (m *MazeSessions) Delete(ctx context.Context, id uuid.UUID) error {
	m.Lock()
	_, live := m.sessions[id]
	delete(m.sessions, id)
	m.Unlock()

	var errs []error
	if m.cache != nil {
		if err := m.cache.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("deleting cached snapshot: %w", err))
		}
	}
	if m.repo != nil {
		if err := m.repo.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("deleting archived maze: %w", err))
		}
	}

	m.logger.Info(fmt.Sprintf("Maze deleted: ID=%s Live=%t", id, live))
	return errors.Join(errs...)
}

// Archived lists recently completed mazes from the archive.
func (m *MazeSessions) Archived(ctx context.Context, limit int64) ([]*dmn.MazeRecord, error) {
	if m.repo == nil {
		return nil, nil
	}
	if limit <= 0 || limit > maxArchiveListing {
		limit = maxArchiveListing
	}
	return m.repo.Recent(ctx, limit)
}

// Info returns the creation parameters of a live maze.
func (m *MazeSessions) Info(id uuid.UUID) (dmn.MazeSession, bool) {
	s, ok := m.session(id)
	if !ok {
		return dmn.MazeSession{}, false
	}
	return s.info, true
}

// Len returns the number of live mazes.
func (m *MazeSessions) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.sessions)
}

// Close drops every live maze. Cached and archived copies are kept.
func (m *MazeSessions) Close() {
	m.Lock()
	defer m.Unlock()
	m.sessions = make(map[uuid.UUID]*session)
}

func (m *MazeSessions) session(id uuid.UUID) (*session, bool) {
	m.RLock()
	defer m.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// mutate runs fn under the session lock and propagates the resulting snapshot.
func (m *MazeSessions) mutate(ctx context.Context, id uuid.UUID, fn func(*session) (maze.Snapshot, error)) (maze.Snapshot, error) {
	s, ok := m.session(id)
	if !ok {
		return maze.Snapshot{}, ErrSessionNotFound
	}

	s.Lock()
	defer s.Unlock()

	snap, err := fn(s)
	if err != nil {
		return maze.Snapshot{}, err
	}

	m.cacheSnapshot(ctx, s, snap)
	if snap.Complete() && !s.archived {
		m.archive(ctx, s, snap)
	}
	return snap, nil
}

// cacheSnapshot mirrors snap to the cache. Failures are logged, not returned:
// the live generator stays authoritative.
func (m *MazeSessions) cacheSnapshot(ctx context.Context, s *session, snap maze.Snapshot) {
	if m.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := m.cache.Save(ctx, s.info.ID, s.run, snap); err != nil {
		m.logger.Warning(fmt.Sprintf("Caching snapshot: ID=%s Steps=%d: %s", s.info.ID, snap.Steps, err))
	}
}

// archive stores a completed maze. On failure the maze stays unarchived and
// the next mutation retries.
func (m *MazeSessions) archive(ctx context.Context, s *session, snap maze.Snapshot) {
	if m.repo == nil {
		s.archived = true
		return
	}

	record, err := dmn.NewMazeRecord(s.info.ID, s.info.Seed, s.run, snap)
	if err != nil {
		m.logger.Error(fmt.Sprintf("Building maze record: ID=%s: %s", s.info.ID, err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := m.repo.Save(ctx, record); err != nil {
		m.logger.Error(fmt.Sprintf("Archiving maze: ID=%s: %s", s.info.ID, err))
		return
	}

	s.archived = true
	m.logger.Info(fmt.Sprintf("Maze completed and archived: ID=%s Steps=%d", s.info.ID, snap.Steps))
}
