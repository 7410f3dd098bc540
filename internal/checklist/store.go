// Package checklist owns the session state: both date-indexed collections,
// the current date and the active tab. Mutations come from the engine
// package; this package installs their results and mirrors them into a
// store.KV.
package checklist

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/checklist/internal/logging"
	"github.com/idilsaglam/checklist/internal/model"
	"github.com/idilsaglam/checklist/internal/store"
)

// Today supplies the fallback date when none is persisted.
type Today interface {
	Today() model.DateKey
}

type options struct {
	logger   *log.Logger
	debounce time.Duration
	timeout  time.Duration
}

// Option configures a Store.
type Option func(*options)

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDebounce coalesces writes per key; zero writes immediately.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithWriteTimeout bounds a single backend write.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// Store holds the checklist state. All methods are safe for concurrent use;
// each mutation is applied as one read-modify-write under the store lock.
type Store struct {
	mu  sync.Mutex
	st  State
	w   *writer
	log *log.Logger
}

// Open builds a Store from the values in kv. It never fails: absent,
// unreadable or malformed values are replaced with empty collections and
// today's date.
func Open(ctx context.Context, kv store.KV, today Today, opts ...Option) *Store {
	o := options{timeout: 5 * time.Second}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	s := &Store{
		w:   newWriter(kv, o.logger, o.debounce, o.timeout),
		log: o.logger,
	}
	s.st = State{
		Open:        s.loadCollection(ctx, kv, KeyOpen),
		Closed:      s.loadCollection(ctx, kv, KeyClosed),
		CurrentDate: s.loadDate(ctx, kv, today),
		Active:      model.TabOpen,
	}
	return s
}

func (s *Store) loadCollection(ctx context.Context, kv store.KV, key string) model.Collection {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		s.log.Warn("read failed, starting empty", "key", key, "err", err)
		return model.Collection{}
	}
	if !ok {
		return model.Collection{}
	}
	var c model.Collection
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		s.log.Warn("malformed value, starting empty", "key", key, "err", err)
		return model.Collection{}
	}
	if c == nil {
		return model.Collection{}
	}
	return c
}

func (s *Store) loadDate(ctx context.Context, kv store.KV, today Today) model.DateKey {
	raw, ok, err := kv.Get(ctx, KeyCurrentDate)
	if err != nil {
		s.log.Warn("read failed, using today", "key", KeyCurrentDate, "err", err)
		return today.Today()
	}
	if !ok {
		return today.Today()
	}
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, `"`) {
		var unquoted string
		if json.Unmarshal([]byte(raw), &unquoted) == nil {
			raw = unquoted
		}
	}
	d, err := model.ParseDateKey(raw)
	if err != nil {
		s.log.Warn("malformed value, using today", "key", KeyCurrentDate, "err", err)
		return today.Today()
	}
	return d
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

func (s *Store) SetOpen(c model.Collection) {
	s.Update(func(_ State, tx *Tx) { tx.SetOpen(c) })
}

func (s *Store) SetClosed(c model.Collection) {
	s.Update(func(_ State, tx *Tx) { tx.SetClosed(c) })
}

func (s *Store) SetCurrentDate(d model.DateKey) {
	s.Update(func(_ State, tx *Tx) { tx.SetCurrentDate(d) })
}

// SetActive selects the tab. The selection is session-only and not persisted.
func (s *Store) SetActive(tab model.Tab) {
	s.Update(func(_ State, tx *Tx) { tx.SetActive(tab) })
}

// Tx stages whole-value replacements inside Update.
type Tx struct {
	open, closed *model.Collection
	date         *model.DateKey
	active       *model.Tab
}

func (tx *Tx) SetOpen(c model.Collection)     { tx.open = &c }
func (tx *Tx) SetClosed(c model.Collection)   { tx.closed = &c }
func (tx *Tx) SetCurrentDate(d model.DateKey) { tx.date = &d }
func (tx *Tx) SetActive(tab model.Tab)        { tx.active = &tab }

// SetCollection stages c as the collection selected by tab.
func (tx *Tx) SetCollection(tab model.Tab, c model.Collection) {
	if tab == model.TabClosed {
		tx.SetClosed(c)
		return
	}
	tx.SetOpen(c)
}

// Update runs fn with the current state under the store lock, installs
// whatever fn staged and schedules a write for each staged persisted value.
func (s *Store) Update(fn func(st State, tx *Tx)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tx Tx
	fn(s.st, &tx)

	if tx.open != nil {
		s.st.Open = normalize(*tx.open)
		s.commitCollection(KeyOpen, s.st.Open)
	}
	if tx.closed != nil {
		s.st.Closed = normalize(*tx.closed)
		s.commitCollection(KeyClosed, s.st.Closed)
	}
	if tx.date != nil {
		s.st.CurrentDate = *tx.date
		s.w.write(KeyCurrentDate, string(*tx.date))
	}
	if tx.active != nil {
		s.st.Active = *tx.active
	}
}

func (s *Store) commitCollection(key string, c model.Collection) {
	b, err := json.Marshal(c)
	if err != nil {
		s.log.Error("encode failed, value not persisted", "key", key, "err", err)
		return
	}
	s.w.write(key, string(b))
}

// Flush writes any debounced values now.
func (s *Store) Flush() {
	s.w.flush()
}

// Close flushes pending writes. The KV itself stays open; its owner
// closes it.
func (s *Store) Close() {
	s.w.close()
}

func normalize(c model.Collection) model.Collection {
	if c == nil {
		return model.Collection{}
	}
	return c
}
