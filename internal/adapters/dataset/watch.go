package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/radar/pkg/logger"
)

// DefaultDebounce collapses editor write bursts into one reload.
const DefaultDebounce = 250 * time.Millisecond

// ErrWatch wraps failures to set up a dataset watch.
var ErrWatch = errors.New("watch dataset")

// Watch calls onChange after the file at path is written, created or renamed
// into place. Changes within debounce of each other trigger a single call.
// The parent directory is watched so atomic replaces are seen. Watch blocks
// until ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func(context.Context)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}

	log := logger.Get()
	log.Info(ctx, "watching dataset", logger.String("path", abs))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn(ctx, "dataset watch error", logger.Error(err))
		case <-timer.C:
			onChange(ctx)
		}
	}
}
