// Package parallel provides small concurrency helpers shared by the
// goroutine fan-out in binary splitting and parallel multiplication.
package parallel

import "sync"

// ErrorCollector captures the first non-nil error set concurrently by
// any number of goroutines. Later errors, and any nil error, are
// discarded. The zero value is ready to use.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err as the collector's error if none has been
// recorded yet. A nil err is always ignored.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
	}
}

// Err returns the first error recorded, or nil if none was.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
