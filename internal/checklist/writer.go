package checklist

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/checklist/internal/store"
)

// writer mirrors values into the KV. Callers never wait for or see a
// write result; failures are logged. With a debounce, only the newest
// value per key is written once the key has been quiet for the interval.
type writer struct {
	kv       store.KV
	log      *log.Logger
	debounce time.Duration
	timeout  time.Duration

	mu      sync.Mutex
	pending map[string]string
	timer   *time.Timer

	// flushMu keeps flushes in order so an older batch can never land
	// after a newer one.
	flushMu sync.Mutex
}

func newWriter(kv store.KV, l *log.Logger, debounce, timeout time.Duration) *writer {
	return &writer{
		kv:       kv,
		log:      l,
		debounce: debounce,
		timeout:  timeout,
		pending:  map[string]string{},
	}
}

func (w *writer) write(key, value string) {
	if w.debounce <= 0 {
		w.set(key, value)
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[key] = value
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.flush)
		return
	}
	w.timer.Reset(w.debounce)
}

func (w *writer) flush() {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	w.mu.Lock()
	batch := w.pending
	w.pending = map[string]string{}
	w.mu.Unlock()

	keys := make([]string, 0, len(batch))
	for k := range batch {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		w.set(k, batch[k])
	}
}

func (w *writer) close() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.flush()
}

func (w *writer) set(key, value string) {
	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	if err := w.kv.Set(ctx, key, value); err != nil {
		w.log.Error("persist failed", "key", key, "err", err)
		return
	}
	w.log.Debug("persisted", "key", key, "bytes", len(value))
}
