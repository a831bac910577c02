package parallel

import (
	"fmt"
	"sync"
)

// ErrorCollector records the first error reported by a group of concurrent
// tasks. Later errors are dropped. The zero value is ready to use.
type ErrorCollector struct {
	once sync.Once
	mu   sync.Mutex
	err  error
}

// SetError stores err if it is the first non-nil error. Nil is ignored.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.once.Do(func() {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
	})
}

// Err returns the first recorded error, or nil.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}
