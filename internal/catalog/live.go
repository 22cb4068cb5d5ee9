package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Live holds the current catalog for a data directory and replaces it when
// the fixture files change. Readers always see a complete catalog.
type Live struct {
	dir      string
	current  atomic.Pointer[Catalog]
	debounce time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	status Status
}

// Status describes the most recent reload attempt.
type Status struct {
	Dir      string
	LoadedAt time.Time
	LastErr  error
}

// NewLive loads dir once. It fails if the initial load fails.
func NewLive(dir string, logger *slog.Logger) (*Live, error) {
	l := &Live{dir: dir, debounce: defaultDebounce, logger: logger}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Static wraps an already loaded catalog that never reloads.
func Static(c *Catalog) *Live {
	l := &Live{logger: slog.Default()}
	l.current.Store(c)
	l.status.LoadedAt = time.Now()
	return l
}

func (l *Live) Current() *Catalog {
	return l.current.Load()
}

func (l *Live) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Reload reads the fixtures again. On error the previous catalog stays.
func (l *Live) Reload() error {
	c, err := Load(l.dir)

	l.mu.Lock()
	l.status.Dir = l.dir
	l.status.LastErr = err
	if err == nil {
		l.status.LoadedAt = time.Now()
	}
	l.mu.Unlock()

	if err != nil {
		return err
	}
	l.current.Store(c)
	l.logger.Info("catalog loaded",
		"dir", l.dir,
		"mountains", len(c.Mountains()),
		"equipment", len(c.Equipment()),
		"templates", len(c.Templates()),
		"plans", len(c.Plans()),
	)
	return nil
}

// Watch reloads the catalog whenever a fixture file in the data directory is
// written, created, removed or renamed. Bursts of events within the debounce
// window cause a single reload. It blocks until ctx is cancelled.
func (l *Live) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			l.logger.Error("failed to close catalog watcher", "error", err)
		}
	}()

	if err := w.Add(l.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", l.dir, err)
	}
	l.logger.Info("watching catalog", "dir", l.dir)

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&relevant == 0 || !IsFixture(ev.Name) {
				continue
			}
			l.logger.Debug("catalog file changed", "path", ev.Name, "op", ev.Op.String())
			pending = time.After(l.debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.logger.Error("catalog watcher error", "error", err)

		case <-pending:
			pending = nil
			if err := l.Reload(); err != nil {
				l.logger.Error("catalog reload failed, keeping previous catalog", "dir", l.dir, "error", err)
			}
		}
	}
}
