// Package station models one window of the legacy system (the POS
// terminal, the admin popup, the public menu) as an in-process unit
// with its own mirror of the shared record and its own resync loop.
//
// A station converges on the latest store state through three paths, in
// priority order: a bus notification from another writer (immediate), a
// snapshot adopted from its opener on the poll tick, and a store reload
// on the same tick when no opener is reachable. Any failure along the
// way keeps the last good mirror; nothing here is fatal.
package station

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"beulahpos/internal/domain"
	"beulahpos/internal/store"
)

// ErrClosed is returned by Update after Close.
var ErrClosed = errors.New("station closed")

// Opener is the capability a spawned station holds on the station that
// spawned it. It replaces the live object aliasing of the legacy popup:
// the child gets copies on demand and may ask the parent to persist,
// never a reference into parent memory.
type Opener interface {
	// Snapshot returns a copy of the opener's current in-memory record.
	// ok is false once the opener has closed.
	Snapshot() (rec domain.Record, ok bool)
	// SaveNow persists the opener's current mirror, so a child save is
	// immediately reflected in the opener's own write path.
	SaveNow() error
}

// Config describes a station before it opens.
type Config struct {
	Name     string
	Owns     domain.FieldSet
	Interval time.Duration
	// Watch selects the subset whose fingerprint gates change
	// notifications. Nil watches the whole record.
	Watch func(domain.Record) any
}

type Station struct {
	name     string
	owns     domain.FieldSet
	st       *store.Store
	interval time.Duration
	watch    func(domain.Record) any
	opener   Opener

	mu       sync.Mutex
	mirror   domain.Record
	fp       uint64
	onChange func(domain.Record)
	closed   bool

	// saveMu orders store writes to match mirror mutation order. It is
	// acquired before mu is released and never the other way around.
	saveMu sync.Mutex

	done  chan struct{}
	busFn func(writer string)
}

// Open starts a station with no opener: it seeds its mirror from the
// store and begins polling.
func Open(st *store.Store, cfg Config) *Station {
	return open(st, cfg, nil)
}

// Spawn opens a child station that prefers this station's live state
// over the store, the way the admin popup reads its opener window.
func (s *Station) Spawn(cfg Config) *Station {
	return open(s.st, cfg, handle{s})
}

func open(st *store.Store, cfg Config, opener Opener) *Station {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	s := &Station{
		name:     cfg.Name,
		owns:     cfg.Owns,
		st:       st,
		interval: cfg.Interval,
		watch:    cfg.Watch,
		opener:   opener,
		done:     make(chan struct{}),
	}

	// Initial state: opener first, store fallback.
	rec, ok := s.probeOpener()
	if !ok {
		rec = st.Load()
	}
	s.mirror = rec
	s.fp = s.fingerprint(rec)

	// Push path: a write by any other station triggers an immediate
	// reload. Self-writes are skipped; Update notifies locally instead.
	s.busFn = func(writer string) {
		if writer == s.name {
			return
		}
		s.resync()
	}
	if err := st.Bus().Subscribe(store.RecordKey, s.busFn); err != nil {
		zap.S().Errorf("station %s: subscribe failed, poll only: %v", s.name, err)
	}

	go s.loop()
	return s
}

func (s *Station) Name() string { return s.name }

// OnChange registers the re-render callback. It fires outside the
// station lock whenever the watched subset actually changed.
func (s *Station) OnChange(fn func(domain.Record)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Record returns a copy of the current mirror.
func (s *Station) Record() domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mirror.Clone()
}

// View runs fn against the current mirror under the station lock.
func (s *Station) View(fn func(domain.Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.mirror)
}

// Update applies fn to the mirror and, if fn succeeds, persists the
// station's owned collections, asks the opener to persist too, and
// fires the local change callback. The store write happens outside the
// station lock so synchronous bus subscribers can read this station.
func (s *Station) Update(fn func(*domain.Record) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if err := fn(&s.mirror); err != nil {
		s.mu.Unlock()
		return err
	}
	rec := s.mirror.Clone()
	s.fp = s.fingerprint(s.mirror)
	cb := s.onChange
	s.saveMu.Lock()
	s.mu.Unlock()

	err := s.st.SaveFields(rec, s.owns, s.name)
	s.saveMu.Unlock()
	if err != nil {
		zap.S().Errorf("station %s: save failed: %v", s.name, err)
		return err
	}
	if s.opener != nil {
		if err := s.opener.SaveNow(); err != nil {
			zap.S().Warnf("station %s: opener save failed: %v", s.name, err)
		}
	}
	if cb != nil {
		cb(rec)
	}
	return nil
}

// Close stops the resync loop and invalidates the capability held by
// any station this one spawned.
func (s *Station) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	if err := s.st.Bus().Unsubscribe(store.RecordKey, s.busFn); err != nil {
		zap.S().Debugf("station %s: unsubscribe: %v", s.name, err)
	}
}

func (s *Station) loop() {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.resync()
		case <-s.done:
			return
		}
	}
}

// resync brings the mirror up to date: opener snapshot when reachable,
// store reload otherwise.
func (s *Station) resync() {
	rec, ok := s.probeOpener()
	if !ok {
		rec = s.st.Load()
	}
	s.adopt(rec)
}

func (s *Station) probeOpener() (domain.Record, bool) {
	if s.opener == nil {
		return domain.Record{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			zap.S().Warnf("station %s: opener probe panicked: %v", s.name, r)
		}
	}()
	return s.opener.Snapshot()
}

// adopt replaces the mirror with the reloaded record unconditionally;
// the fingerprint decides only whether the change callback fires, so an
// unwatched collection still converges without triggering a re-render.
func (s *Station) adopt(rec domain.Record) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	fp := s.fingerprint(rec)
	changed := fp != s.fp
	s.mirror = rec
	s.fp = fp
	cb := s.onChange
	s.mu.Unlock()

	if changed && cb != nil {
		cb(rec)
	}
}

func (s *Station) fingerprint(rec domain.Record) uint64 {
	if s.watch != nil {
		return store.Fingerprint(s.watch(rec))
	}
	return store.Fingerprint(rec)
}

// persist writes the current mirror's owned fields without running a
// mutation. Used by the opener capability.
func (s *Station) persist() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	rec := s.mirror.Clone()
	s.saveMu.Lock()
	s.mu.Unlock()
	err := s.st.SaveFields(rec, s.owns, s.name)
	s.saveMu.Unlock()
	return err
}

type handle struct {
	s *Station
}

func (h handle) Snapshot() (domain.Record, bool) {
	h.s.mu.Lock()
	if h.s.closed {
		h.s.mu.Unlock()
		return domain.Record{}, false
	}
	rec := h.s.mirror.Clone()
	h.s.mu.Unlock()
	return rec, true
}

func (h handle) SaveNow() error {
	return h.s.persist()
}
