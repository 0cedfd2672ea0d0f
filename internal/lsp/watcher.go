package lsp

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gomarkup/internal/logging"
)

// DefaultDebounce is how long the watcher waits for more events before
// reporting a change.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a fixed set of files, typically the custom data
// catalogs. It watches their parent directories so that editors which save
// by rename are noticed too. Bursts of events within the debounce window
// produce one callback.
type Watcher struct {
	files    map[string]bool
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	logger   *log.Logger

	closeOnce sync.Once
}

// NewWatcher watches paths and calls onChange after they change. A debounce
// of zero selects DefaultDebounce.
func NewWatcher(paths []string, debounce time.Duration, onChange func(), logger *log.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		files:    make(map[string]bool, len(paths)),
		watcher:  fw,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}

	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			// The directory may appear later; the file is then simply not
			// watched.
			logger.Warn("cannot watch directory", logging.FieldPath, dir, logging.FieldError, err)
		}
	}

	return w, nil
}

// Run delivers change callbacks until ctx is done or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("custom data changed", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", logging.FieldError, err)

		case <-timerCh:
			timerCh = nil
			if w.onChange != nil {
				w.onChange()
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	return w.files[filepath.Clean(event.Name)]
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}
