// FILE: fortidec/src/internal/record/record.go
package record

import (
	"github.com/lixenwraith/log"
)

// Record tags, big-endian, read at every scan position
const (
	TagBlock    = 0xECCF // multi-entry LZ4-block container
	TagEnvelope = 0xAA01 // TLV envelope wrapping an LZ4-frame payload
)

// Receives each decoded log entry as an opaque byte sequence.
// Writes are fire-and-forget from the decoder's view; implementations
// latch I/O errors internally and surface them when closed.
type EntrySink interface {
	WriteEntry(entry []byte)
}

// Receives structured decode events. Debug events carry the same
// severity as Info but may be filtered by the sink's configuration.
type Diagnostics interface {
	Info(msg string, kv ...any)
	Debug(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// Adapts a log.Logger to the Diagnostics interface
type loggerDiagnostics struct {
	logger *log.Logger
}

// NewLoggerDiagnostics wraps an application logger as a diagnostics sink.
func NewLoggerDiagnostics(logger *log.Logger) Diagnostics {
	return &loggerDiagnostics{logger: logger}
}

func (d *loggerDiagnostics) Info(msg string, kv ...any) {
	d.logger.Info(append([]any{"msg", msg}, kv...)...)
}

func (d *loggerDiagnostics) Debug(msg string, kv ...any) {
	d.logger.Debug(append([]any{"msg", msg}, kv...)...)
}

func (d *loggerDiagnostics) Error(msg string, kv ...any) {
	d.logger.Error(append([]any{"msg", msg}, kv...)...)
}
