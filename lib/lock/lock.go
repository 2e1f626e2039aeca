package lock

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// retryDelay is how often a blocked TryLock re-checks the lock.
const retryDelay = 100 * time.Millisecond

// FileLock provides cross-process locking keyed by name, backed by flock(2)
type FileLock struct {
	dir    string
	logger *slog.Logger
	held   map[string]*flock.Flock
}

// NewFileLock creates a lock manager storing lock files under dir. An empty
// dir uses a directory in the system temp dir.
func NewFileLock(dir string, logger *slog.Logger) *FileLock {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "sunburst-locks")
	}
	logger.Debug("Using local file-based locking", slog.String("dir", dir))
	return &FileLock{
		dir:    dir,
		logger: logger,
		held:   make(map[string]*flock.Flock),
	}
}

// TryLock attempts to acquire a lock with the given key, waiting up to
// timeout. It returns false without error when the timeout expires.
func (fl *FileLock) TryLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	lockFile := fl.getLockFilePath(key)

	// Ensure the lock directory exists
	if err := os.MkdirAll(filepath.Dir(lockFile), 0750); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	lk := flock.New(lockFile)
	ok, err := lk.TryLockContext(ctx, retryDelay)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			fl.logger.Debug("Timed out waiting for lock", slog.String("key", key))
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return false, nil
	}

	fl.held[key] = lk
	fl.logger.Debug("Acquired lock", slog.String("key", key), slog.String("file", lockFile))
	return true, nil
}

// Unlock releases the lock for the given key
func (fl *FileLock) Unlock(ctx context.Context, key string) error {
	lk, ok := fl.held[key]
	if !ok {
		return nil
	}
	delete(fl.held, key)

	if err := lk.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	fl.logger.Debug("Released lock", slog.String("key", key), slog.String("file", lk.Path()))
	return nil
}

// Close releases every lock still held
func (fl *FileLock) Close() error {
	for key := range fl.held {
		if err := fl.Unlock(context.Background(), key); err != nil {
			return err
		}
	}
	return nil
}

// getLockFilePath returns the file path for a lock key
func (fl *FileLock) getLockFilePath(key string) string {
	// Clean the path to prevent path traversal attacks
	return filepath.Join(fl.dir, filepath.Base(filepath.Clean(key))+".lock")
}
