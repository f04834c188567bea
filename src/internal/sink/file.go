// FILE: fortidec/src/internal/sink/file.go
package sink

import (
	"bufio"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Writes decoded entries to a destination file, optionally
// gzip-compressed. Creation is exclusive: an existing destination is
// reported as fs.ErrExist so batch runs never overwrite prior output.
type FileSink struct {
	path      string
	file      *os.File
	gz        *gzip.Writer
	w         *bufio.Writer
	err       error
	startTime time.Time

	// Statistics
	totalWritten atomic.Uint64
	totalBytes   atomic.Uint64
	lastWritten  atomic.Value // time.Time
}

// NewFileSink creates the destination file. With compress set the
// output is gzip-framed; the caller chooses the matching suffix.
func NewFileSink(path string, compress bool) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	fs := &FileSink{
		path:      path,
		file:      f,
		startTime: time.Now(),
	}
	fs.lastWritten.Store(time.Time{})

	if compress {
		fs.gz = gzip.NewWriter(f)
		fs.w = bufio.NewWriter(fs.gz)
	} else {
		fs.w = bufio.NewWriter(f)
	}
	return fs, nil
}

// Path returns the destination path, used for cleanup of partial output.
func (fs *FileSink) Path() string {
	return fs.path
}

func (fs *FileSink) WriteEntry(entry []byte) {
	if fs.err != nil {
		return
	}
	if _, err := fs.w.Write(entry); err != nil {
		fs.err = err
		return
	}
	if err := fs.w.WriteByte('\n'); err != nil {
		fs.err = err
		return
	}
	fs.totalWritten.Add(1)
	fs.totalBytes.Add(uint64(len(entry) + 1))
	fs.lastWritten.Store(time.Now())
}

func (fs *FileSink) Close() error {
	if err := fs.w.Flush(); err != nil && fs.err == nil {
		fs.err = err
	}
	if fs.gz != nil {
		if err := fs.gz.Close(); err != nil && fs.err == nil {
			fs.err = err
		}
	}
	if err := fs.file.Close(); err != nil && fs.err == nil {
		fs.err = err
	}
	return fs.err
}

func (fs *FileSink) GetStats() SinkStats {
	lastWritten, _ := fs.lastWritten.Load().(time.Time)

	typ := "file"
	if fs.gz != nil {
		typ = "file_gzip"
	}
	return SinkStats{
		Type:         typ,
		TotalWritten: fs.totalWritten.Load(),
		TotalBytes:   fs.totalBytes.Load(),
		StartTime:    fs.startTime,
		LastWritten:  lastWritten,
	}
}
