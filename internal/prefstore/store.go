// Package prefstore resolves the effective settings record of a visitor and
// persists changes back to the device cache and the remote tier.
//
// Tiers are exclusive: the device cache wins outright when it holds a
// parseable record, otherwise the record the host embedded for the current
// identity (the seed) is used, otherwise the defaults. The chosen tier is
// completed field by field from the defaults, never from another tier.
//
// A device whose cache was written before a remote change keeps showing the
// cached record; the two tiers are not reconciled.
package prefstore

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
)

const (
	defaultTimeout = 10 * time.Second
)

// Cache is a device scoped key value store. fiber.Storage satisfies it.
// Get returns nil and no error for a missing key.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

// Remote is the host's persistence endpoint for the current identity.
type Remote interface {
	Save(ctx context.Context, r prefs.Record) (prefs.Record, error)
	Clear(ctx context.Context) error
}

// Store resolves and persists the settings record of one visitor.
type Store struct {
	cache   Cache
	remote  Remote
	seed    []byte
	key     string
	timeout time.Duration
	log     zerolog.Logger

	inflight sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithSeed sets the record the host provided for the current identity.
func WithSeed(raw []byte) Option {
	return func(s *Store) {
		s.seed = append([]byte(nil), raw...)
	}
}

// WithCacheKey overrides the device cache key.
func WithCacheKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithTimeout bounds each remote submission.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithLogger sets the logger; the global zerolog logger is used otherwise.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// New creates a Store. Either tier may be nil.
func New(cache Cache, remote Remote, opts ...Option) *Store {
	s := &Store{
		cache:   cache,
		remote:  remote,
		key:     prefs.CacheKey,
		timeout: defaultTimeout,
		log:     log.Logger.With().Str("component", "prefstore").Logger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Resolve returns the fully populated effective record.
func (s *Store) Resolve() prefs.Record {
	if p, ok := s.cached(); ok {
		return prefs.Sanitize(p.Merge())
	}

	if p, ok := s.seeded(); ok {
		return prefs.Sanitize(p.Merge())
	}

	return prefs.Default()
}

// Persist writes r to the device cache right away and submits it to the
// remote tier in the background. Neither failure reaches the caller and
// neither tier waits for the other.
func (s *Store) Persist(r prefs.Record) {
	r = prefs.Sanitize(r)

	if s.cache != nil {
		if err := s.cache.Set(s.key, r.JSON(), 0); err != nil {
			s.log.Error().Err(err).Str("key", s.key).Msg("can't write settings to device cache")
		}
	}

	s.submit("save", func(ctx context.Context) error {
		saved, err := s.remote.Save(ctx, r)
		if err == nil {
			s.log.Debug().RawJSON("settings", saved.JSON()).Msg("settings saved remotely")
		}

		return err
	})
}

// Reset clears the device cache, schedules the remote record to be cleared
// and returns the defaults. The host provided seed is dropped as well since
// it describes the record being cleared. A save that is still in flight may land after
// the reset; whichever request the remote tier processes last wins.
func (s *Store) Reset() prefs.Record {
	if s.cache != nil {
		if err := s.cache.Delete(s.key); err != nil {
			s.log.Error().Err(err).Str("key", s.key).Msg("can't clear device cache")
		}
	}

	s.seed = nil

	s.submit("reset", func(ctx context.Context) error {
		return s.remote.Clear(ctx)
	})

	return prefs.Default()
}

// Wait blocks until all submitted remote requests have returned.
func (s *Store) Wait() {
	s.inflight.Wait()
}

func (s *Store) cached() (prefs.Partial, bool) {
	if s.cache == nil {
		return prefs.Partial{}, false
	}

	raw, err := s.cache.Get(s.key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("can't read device cache")
		return prefs.Partial{}, false
	}

	if len(raw) == 0 {
		return prefs.Partial{}, false
	}

	p, err := prefs.Decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("ignoring malformed cached settings")
		return prefs.Partial{}, false
	}

	return p, true
}

func (s *Store) seeded() (prefs.Partial, bool) {
	if len(s.seed) == 0 {
		return prefs.Partial{}, false
	}

	p, err := prefs.Decode(s.seed)
	if err != nil {
		s.log.Warn().Err(err).Msg("ignoring malformed host provided settings")
		return prefs.Partial{}, false
	}

	return p, true
}

func (s *Store) submit(op string, fn func(ctx context.Context) error) {
	if s.remote == nil {
		return
	}

	s.inflight.Add(1)

	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			s.log.Error().Err(err).Str("op", op).Msg("remote settings submission failed")
		}
	}()
}
