package framekit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWaitComplete(t *testing.T) {
	t.Run("already complete returns without waiting", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "shot.0001.exr", "shot.0002.exr", "shot.0003.exr")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := WaitComplete(ctx, filepath.Join(dir, "shot.1-3.exr"), WithPadding(4))
		if err != nil {
			t.Fatalf("WaitComplete() error = %v", err)
		}
		if !result.Complete() {
			t.Errorf("Missing = %v, want none", result.Missing)
		}
		if len(result.Matched) != 3 {
			t.Errorf("len(Matched) = %d, want 3", len(result.Matched))
		}
	})

	t.Run("waits for late frames", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "shot.0001.exr", "shot.0002.exr")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		go func() {
			time.Sleep(150 * time.Millisecond)
			os.WriteFile(filepath.Join(dir, "shot.0003.exr"), []byte("frame"), 0o644)
		}()

		result, err := WaitComplete(ctx, filepath.Join(dir, "shot.1-3.exr"),
			WithPadding(4), WithDebounce(50*time.Millisecond))
		if err != nil {
			t.Fatalf("WaitComplete() error = %v", err)
		}
		if !result.Complete() {
			t.Errorf("Missing = %v, want none", result.Missing)
		}
	})

	t.Run("gives up at the context deadline", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "shot.0001.exr")

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		result, err := WaitComplete(ctx, filepath.Join(dir, "shot.1-3.exr"),
			WithPadding(4), WithDebounce(50*time.Millisecond))
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("error = %v, want context.DeadlineExceeded", err)
		}
		if result != nil {
			t.Errorf("result = %v, want nil", result)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		ctx := context.Background()
		pattern := filepath.Join(t.TempDir(), "missing", "shot.1-3.exr")
		if _, err := WaitComplete(ctx, pattern); !IsNotExist(err) {
			t.Errorf("error = %v, want ErrNotExist", err)
		}
	})

	t.Run("malformed range", func(t *testing.T) {
		ctx := context.Background()
		pattern := filepath.Join(t.TempDir(), "shot.1-5x0.exr")
		if _, err := WaitComplete(ctx, pattern); !IsMalformedPattern(err) {
			t.Errorf("error = %v, want ErrMalformedPattern", err)
		}
	})
}
