// SPDX-License-Identifier: MPL-2.0

// Package watch reruns a callback when catalog files change.
//
// The parent directory of every watched file is registered with fsnotify so
// editors that replace a file by renaming a temporary one are still seen.
// Events within the debounce window are coalesced so the callback fires once
// with the full set of changed files.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrNoFiles is returned by New when Config.Files is empty.
	ErrNoFiles = errors.New("watch: no files to watch")
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watch: Run called more than once")
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Files are the paths whose changes trigger OnChange.
		Files []string

		// Debounce is the quiet period after the last event before the
		// callback fires.
		Debounce time.Duration

		// OnChange is called with the sorted absolute paths of the files that
		// changed. A returned error is reported to Stderr and watching goes on.
		OnChange func(ctx context.Context, changed []string) error

		// Stderr receives non-fatal errors. Nil defaults to os.Stderr.
		Stderr io.Writer
	}

	// Watcher monitors a fixed set of files. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		files    map[string]struct{}
		stderr   io.Writer
		debounce time.Duration
		started  atomic.Bool
	}
)

// New resolves cfg.Files to absolute paths and registers their directories.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Files) == 0 {
		return nil, ErrNoFiles
	}

	files := make(map[string]struct{}, len(cfg.Files))
	dirs := make(map[string]struct{})
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %q: %w", f, err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	for _, dir := range slices.Sorted(maps.Keys(dirs)) {
		if err := fsw.Add(dir); err != nil {
			fsw.Close() //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("watch: add directory %q: %w", dir, err)
		}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Watcher{cfg: cfg, fsw: fsw, files: files, stderr: stderr, debounce: debounce}, nil
}

// Run blocks until ctx is canceled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire drains the pending set. A run still in progress reschedules
	// instead of overlapping, so no change is lost.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				fmt.Fprintf(w.stderr, "watch: %v\n", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			fmt.Fprintf(w.stderr, "watch: close fsnotify: %v\n", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if !w.relevant(evt) {
				continue
			}
			mu.Lock()
			pending[filepath.Clean(evt.Name)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatal(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			fmt.Fprintf(w.stderr, "watch: fsnotify error: %v\n", err)
		}
	}
}

// relevant reports whether evt touches a watched file in a way that can
// change its content. Chmod-only events are dropped.
func (w *Watcher) relevant(evt fsnotify.Event) bool {
	if evt.Op == fsnotify.Chmod {
		return false
	}
	_, ok := w.files[filepath.Clean(evt.Name)]
	return ok
}
