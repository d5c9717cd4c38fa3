package cleanup

import (
	"fmt"
	"os"
	"sync"
)

var (
	mu    sync.Mutex
	hooks []func() error
)

// Register adds a cleanup hook executed in LIFO order.
func Register(hook func() error) {
	if hook == nil {
		return
	}
	mu.Lock()
	hooks = append(hooks, hook)
	mu.Unlock()
}

// RegisterTempFile schedules a temp file (e.g. a downloaded video) for
// removal on exit. A file the user already saved elsewhere is safe to drop.
func RegisterTempFile(path string) {
	Register(func() error {
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	})
}

// RunAll executes all registered hooks and returns a combined error if any fail.
func RunAll() error {
	mu.Lock()
	local := hooks
	hooks = nil
	mu.Unlock()

	var errs []error
	for i := len(local) - 1; i >= 0; i-- {
		if err := local[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("cleanup failed: %v", errs)
}
