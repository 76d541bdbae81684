package logging

import (
	"fmt"
	"os"
	"sync"

	"github.com/gofrs/flock"
)

// appendWriter opens the log file for every write and holds an advisory lock
// on "<path>.lock" for the duration of the append.
type appendWriter struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

func newAppendWriter(path string) *appendWriter {
	return &appendWriter{path: path, lock: flock.New(path + ".lock")}
}

func (w *appendWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock log file %s: %w", w.path, err)
	}
	defer func() { _ = w.lock.Unlock() }()

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open log file %s: %w", w.path, err)
	}
	n, err := file.Write(p)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return n, err
}
