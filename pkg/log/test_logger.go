package log

import (
	"sync"
)

// TestLogger is a logger for tests: it swallows output and records entries
// so assertions can inspect what was logged.
type TestLogger struct {
	Logger

	mu      sync.Mutex
	entries []Entry
}

// NewTestLogger creates a logger suitable for tests.
func NewTestLogger() *TestLogger {
	t := &TestLogger{}
	t.Logger = NewLogger(
		WithLevel(DebugLevel),
		WithOutput(&captureOutput{t: t}),
	)
	return t
}

// Entries returns a copy of the captured entries.
func (t *TestLogger) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

type captureOutput struct {
	t *TestLogger
}

func (o *captureOutput) Write(formattedEntry []byte) error {
	o.t.mu.Lock()
	defer o.t.mu.Unlock()
	o.t.entries = append(o.t.entries, Entry{Message: string(formattedEntry)})
	return nil
}
