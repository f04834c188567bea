// FILE: fortidec/src/internal/sink/sink.go
package sink

import (
	"time"
)

// Sink is an output destination for decoded log entries. WriteEntry is
// fire-and-forget from the decoder's view: the first write error is
// latched and every later write becomes a no-op, so a decode pass never
// blocks or retries on output failure. Close flushes and reports the
// latched error.
type Sink interface {
	// Appends one entry, newline-terminated
	WriteEntry(entry []byte)

	// Flushes buffered data and releases the destination
	Close() error

	// Returns sink statistics
	GetStats() SinkStats
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type         string
	TotalWritten uint64
	TotalBytes   uint64
	StartTime    time.Time
	LastWritten  time.Time
}
