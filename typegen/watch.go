package typegen

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/logger"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 300 * time.Millisecond

// SchemaWatcher calls OnChange whenever the schema file is written.
type SchemaWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func() error

	mu    sync.Mutex
	timer *time.Timer
	wg    sync.WaitGroup

	// run serializes callbacks; a timer can fire while the previous
	// regeneration is still writing.
	run sync.Mutex
}

// NewSchemaWatcher watches the directory containing path. Watching the
// directory keeps working when editors replace the file instead of writing it.
func NewSchemaWatcher(path string, debounce time.Duration, onChange func() error) (*SchemaWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", filepath.Dir(path))
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &SchemaWatcher{
		path:     filepath.Clean(path),
		watcher:  watcher,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run blocks until ctx is cancelled. Callback errors are logged and do not
// stop the watch.
func (sw *SchemaWatcher) Run(ctx context.Context) error {
	log := logger.ComponentLogger("typegen.watch")
	defer sw.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != sw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debugw("Schema change detected", logger.FieldFile, event.Name, "op", event.Op.String())
			sw.schedule(log.Errorw)

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Schema watcher error", logger.FieldError, err)
		}
	}
}

// schedule debounces rapid changes into a single callback.
func (sw *SchemaWatcher) schedule(report func(string, ...interface{})) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.timer != nil && sw.timer.Stop() {
		sw.wg.Done()
	}
	sw.wg.Add(1)
	sw.timer = time.AfterFunc(sw.debounce, func() {
		defer sw.wg.Done()
		sw.run.Lock()
		defer sw.run.Unlock()
		if err := sw.onChange(); err != nil {
			report("Regeneration failed", logger.FieldError, err)
		}
	})
}

// stop closes the watcher and waits for a pending callback.
func (sw *SchemaWatcher) stop() {
	sw.mu.Lock()
	if sw.timer != nil && sw.timer.Stop() {
		sw.wg.Done()
	}
	sw.mu.Unlock()

	sw.wg.Wait()
	sw.watcher.Close()
}
