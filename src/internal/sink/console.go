// FILE: fortidec/src/internal/sink/console.go
package sink

import (
	"bufio"
	"io"
	"os"
	"sync/atomic"
	"time"
)

// Writes decoded entries to a console stream, one per line. The
// underlying stream is not owned and is left open on Close.
type ConsoleSink struct {
	out       *bufio.Writer
	err       error
	startTime time.Time

	// Statistics
	totalWritten atomic.Uint64
	totalBytes   atomic.Uint64
	lastWritten  atomic.Value // time.Time
}

// NewStdoutSink creates a console sink on standard output.
func NewStdoutSink() *ConsoleSink {
	return NewConsoleSink(os.Stdout)
}

// NewConsoleSink creates a console sink on an arbitrary stream.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	cs := &ConsoleSink{
		out:       bufio.NewWriter(w),
		startTime: time.Now(),
	}
	cs.lastWritten.Store(time.Time{})
	return cs
}

func (cs *ConsoleSink) WriteEntry(entry []byte) {
	if cs.err != nil {
		return
	}
	if _, err := cs.out.Write(entry); err != nil {
		cs.err = err
		return
	}
	if err := cs.out.WriteByte('\n'); err != nil {
		cs.err = err
		return
	}
	cs.totalWritten.Add(1)
	cs.totalBytes.Add(uint64(len(entry) + 1))
	cs.lastWritten.Store(time.Now())
}

func (cs *ConsoleSink) Close() error {
	if err := cs.out.Flush(); err != nil && cs.err == nil {
		cs.err = err
	}
	return cs.err
}

func (cs *ConsoleSink) GetStats() SinkStats {
	lastWritten, _ := cs.lastWritten.Load().(time.Time)

	return SinkStats{
		Type:         "console",
		TotalWritten: cs.totalWritten.Load(),
		TotalBytes:   cs.totalBytes.Load(),
		StartTime:    cs.startTime,
		LastWritten:  lastWritten,
	}
}
