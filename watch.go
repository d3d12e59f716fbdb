package framekit

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a watched directory must stay quiet before a
// sequence completeness re-check.
const DefaultDebounce = 500 * time.Millisecond

// WaitComplete blocks until every frame of the sequence pattern has a
// matching file on disk, then returns the final resolution.
//
// The pattern's directory is watched for filesystem events; bursts of
// events (a render delivering many frames) are debounced so the directory
// is re-listed once per quiet period rather than once per file. Waiting is
// bounded by the context: cancellation or deadline expiry returns the
// context's error. The directory must exist before the call.
func WaitComplete(ctx context.Context, pattern string, options ...Option) (*ResolveResult, error) {
	o := newOptions(options...)

	abs, err := filepath.Abs(pattern)
	if err != nil {
		return nil, &PathError{Op: "watch", Path: pattern, Err: err}
	}
	dir := filepath.Dir(abs)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &PathError{Op: "watch", Path: pattern, Err: err}
	}
	defer watcher.Close()

	// Watch before the first resolve so frames arriving in between are
	// not missed.
	if err := watcher.Add(dir); err != nil {
		return nil, &PathError{Op: "watch", Path: dir, Err: underlying(err)}
	}

	result, err := Resolve(ctx, pattern, options...)
	if err != nil {
		return nil, err
	}
	if result.Complete() {
		return result, nil
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	rearm := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.NewTimer(o.Debounce)
		fire = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil, &PathError{Op: "watch", Path: dir, Err: ErrClosed}
			}
			// Chmod-only events cannot change sequence completeness.
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			rearm()

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil, &PathError{Op: "watch", Path: dir, Err: ErrClosed}
			}
			// Event overflow or similar: force a re-check rather than
			// trusting the event stream.
			rearm()

		case <-fire:
			result, err = Resolve(ctx, pattern, options...)
			if err != nil {
				return nil, err
			}
			if result.Complete() {
				return result, nil
			}
		}
	}
}
