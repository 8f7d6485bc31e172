package easel

import (
	"context"
	"sync"
)

// DetailUpdate is one resolved watcher target: the compiled detail, or the
// error the fetch surfaced.
type DetailUpdate struct {
	Detail *TemplateDetail
	Err    error
}

// Watcher tracks a changing target template for a UI consumer. Each Set
// re-runs the fetch sequence; when the target changes again before the
// previous fetch resolves, the stale result is discarded instead of
// clobbering newer state. Cancellation is cooperative: the underlying fetch
// is not aborted, only its result ignored.
type Watcher struct {
	store *Store

	mu      sync.Mutex
	gen     uint64
	current *TemplateDetail
	err     error
	closed  bool
	updates chan DetailUpdate
}

func NewWatcher(store *Store) *Watcher {
	return &Watcher{
		store:   store,
		updates: make(chan DetailUpdate, 16),
	}
}

// Set retargets the watcher and starts resolving the new identifier. It
// returns immediately; the result lands in Current and on Updates.
func (w *Watcher) Set(ctx context.Context, id string, fallbackName string, fallbackDescription string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.gen++
	gen := w.gen
	w.mu.Unlock()

	go func() {
		detail, err := w.store.Detail(ctx, id, fallbackName, fallbackDescription)

		w.mu.Lock()
		defer w.mu.Unlock()

		if w.closed || gen != w.gen {
			// superseded while in flight
			return
		}

		w.current, w.err = detail, err

		select {
		case w.updates <- DetailUpdate{Detail: detail, Err: err}:
		default:
		}
	}()
}

// Current returns the latest committed result.
func (w *Watcher) Current() (*TemplateDetail, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.current, w.err
}

// Updates exposes committed results as they arrive. Slow consumers miss
// intermediate updates rather than blocking the watcher.
func (w *Watcher) Updates() <-chan DetailUpdate {
	return w.updates
}

// Close tears the watcher down; in-flight results are dropped.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	close(w.updates)
}
