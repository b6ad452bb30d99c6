package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-bucket/bucket"
	"github.com/wippyai/wasm-bucket/errors"
)

// DefaultDebounce batches rapid bursts (editor saves, compiler output)
// into one event per module and operation.
const DefaultDebounce = 200 * time.Millisecond

// Watcher emits module-level events for one bucket.
type Watcher struct {
	b        *bucket.Bucket
	fs       *fsnotify.Watcher
	events   chan Event
	errs     chan error
	debounce time.Duration
	closed   chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher over the bucket root and every existing module
// directory. Run must be called to start delivery.
func New(b *bucket.Bucket, opts ...Option) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseWatch, errors.KindIO, err, "create watcher")
	}

	w := &Watcher{
		b:        b,
		fs:       fs,
		events:   make(chan Event, 64),
		errs:     make(chan error, 1),
		debounce: DefaultDebounce,
		closed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fs.Add(b.Root()); err != nil {
		fs.Close()
		return nil, errors.IO(errors.PhaseWatch, b.Root(), err)
	}

	entries, err := os.ReadDir(b.Root())
	if err != nil {
		fs.Close()
		return nil, errors.IO(errors.PhaseWatch, b.Root(), err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(b.Root(), entry.Name())
		if err := fs.Add(dir); err != nil {
			Logger().Warn("watch module dir", zap.String("dir", dir), zap.Error(err))
		}
	}

	return w, nil
}

// Events returns the module-level event channel. It is closed when Run
// returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the watcher's error channel.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the underlying filesystem watcher. Run returns shortly
// after.
func (w *Watcher) Close() error {
	select {
	case <-w.closed:
		return errors.Closed(errors.PhaseWatch, "watcher")
	default:
		close(w.closed)
	}
	return w.fs.Close()
}

// Run delivers events until the context is cancelled or the watcher is
// closed. It owns the events channel and closes it on return.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)

	var pending []Event
	var timer *time.Timer
	var fire <-chan time.Time

	flush := func() {
		for _, ev := range coalesce(pending) {
			select {
			case w.events <- ev:
			case <-ctx.Done():
				return
			}
		}
		pending = pending[:0]
		fire = nil
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.closed:
			flush()
			return

		case raw, ok := <-w.fs.Events:
			if !ok {
				flush()
				return
			}
			w.adjustWatches(raw)
			ev, relevant := classify(w.b.Root(), raw)
			if !relevant {
				continue
			}
			Logger().Debug("bucket event",
				zap.String("module", ev.Module),
				zap.Stringer("op", ev.Op))
			pending = append(pending, ev)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			flush()

		case err, ok := <-w.fs.Errors:
			if !ok {
				flush()
				return
			}
			select {
			case w.errs <- errors.Wrap(errors.PhaseWatch, errors.KindIO, err, "watch"):
			default:
			}
		}
	}
}

// adjustWatches follows module directories as they come and go. fsnotify
// drops removed paths on its own; only additions need handling.
func (w *Watcher) adjustWatches(raw fsnotify.Event) {
	if !raw.Has(fsnotify.Create) {
		return
	}
	if filepath.Dir(raw.Name) != filepath.Clean(w.b.Root()) {
		return
	}
	info, err := os.Stat(raw.Name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.fs.Add(raw.Name); err != nil {
		Logger().Warn("watch new module dir", zap.String("dir", raw.Name), zap.Error(err))
	}
}
