package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"blightcli/internal/infrastructure"
)

// DefaultDebounce is how long the watcher waits for writes to settle
const DefaultDebounce = 2 * time.Second

// Watcher reports writes to a fixed set of files in one directory. Bursts
// of events are collapsed into a single callback once the directory has
// been quiet for the debounce delay.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dir      string
	files    map[string]bool
	debounce time.Duration
	logger   *slog.Logger
}

// New starts watching dir for writes to the named files. An empty files
// list matches every file.
func New(dir string, files []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[filepath.Base(f)] = true
	}

	return &Watcher{
		fsw:      fsw,
		dir:      dir,
		files:    set,
		debounce: debounce,
		logger:   infrastructure.WithComponent(logger, "watch"),
	}, nil
}

// Run delivers the changed file paths to onChange until ctx is done. A
// failing callback is logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string) error) error {
	defer w.fsw.Close()

	w.logger.InfoContext(ctx, "Watching for raw data changes",
		slog.String("dir", w.dir),
		slog.Duration("debounce", w.debounce))

	pending := make(map[string]bool)
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.DebugContext(ctx, "Raw file change detected",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()))
			pending[event.Name] = true
			fire = time.After(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorContext(ctx, "Watcher error", slog.String("error", err.Error()))

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)

			if err := onChange(ctx, changed); err != nil {
				w.logger.ErrorContext(ctx, "Change handler failed",
					slog.Any("files", changed),
					slog.String("error", err.Error()))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return len(w.files) == 0 || w.files[filepath.Base(event.Name)]
}
