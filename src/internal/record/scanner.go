// FILE: fortidec/src/internal/record/scanner.go
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Scanner demultiplexes a decompressed appliance log stream into
// individual log entries. It reads 2-byte record tags sequentially,
// dispatches to the matching record decoder and forwards every decoded
// entry to the sink. All failure handling is local: record-level
// failures skip one record, an unknown tag ends the current stream.
type Scanner struct {
	r       *offsetReader
	sink    EntrySink
	diag    Diagnostics
	source  string
	entries uint64
}

// NewScanner creates a scanner over a plain (already decompressed) byte
// stream. source names the stream in diagnostics, typically a file path.
func NewScanner(r io.Reader, sink EntrySink, diag Diagnostics, source string) *Scanner {
	return &Scanner{
		r:      &offsetReader{r: r},
		sink:   sink,
		diag:   diag,
		source: source,
	}
}

// Scan reads records until EOF, an unknown tag, or a truncated record.
// Those three conditions all terminate the scan with a diagnostic and a
// nil error; a non-nil error is returned only when the underlying reader
// fails, e.g. a corrupt outer container. Entries already forwarded to
// the sink before a failure stand.
func (s *Scanner) Scan() error {
	for {
		off := s.r.off
		var tag [2]byte
		_, err := io.ReadFull(s.r, tag[:])
		if errors.Is(err, io.EOF) {
			s.diag.Info("Done decoding stream",
				"source", s.source,
				"entries", s.entries)
			return nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			// A single 0x00 byte before EOF is pre-allocated space in a
			// live tlog; the next read terminates the scan normally.
			if tag[0] == 0x00 {
				continue
			}
			s.diag.Error("Unknown record tag - stopping scan",
				"source", s.source,
				"offset", off,
				"tag", fmt.Sprintf("%#02x", tag[0]))
			return nil
		}
		if err != nil {
			return fmt.Errorf("read record tag at offset %d: %w", off, err)
		}

		switch t := binary.BigEndian.Uint16(tag[:]); t {
		case 0x0000:
			// Pre-allocated space in a live tlog, skip the tag and rescan
			continue
		case TagBlock:
			s.diag.Debug("Found block record",
				"source", s.source,
				"offset", off)
			entries, err := decodeBlock(s.r, off, s.source, s.diag)
			if stop := s.handleDecodeErr(err, off); stop != nil || err != nil {
				return stop
			}
			s.forward(entries)
		case TagEnvelope:
			s.diag.Debug("Found envelope record",
				"source", s.source,
				"offset", off)
			entries, err := decodeEnvelope(s.r, off, s.source, s.diag)
			if stop := s.handleDecodeErr(err, off); stop != nil || err != nil {
				return stop
			}
			s.forward(entries)
		default:
			s.diag.Error("Unknown record tag - stopping scan",
				"source", s.source,
				"offset", off,
				"tag", fmt.Sprintf("%#04x", t))
			return nil
		}
	}
}

// Entries returns the number of entries forwarded to the sink so far.
func (s *Scanner) Entries() uint64 {
	return s.entries
}

func (s *Scanner) forward(entries [][]byte) {
	for _, e := range entries {
		s.sink.WriteEntry(e)
	}
	s.entries += uint64(len(entries))
}

// handleDecodeErr classifies a decoder error. Truncation means the
// stream ended mid-record: diagnose and end the scan cleanly. Anything
// else is a transport failure reported to the caller.
func (s *Scanner) handleDecodeErr(err error, off int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, errMalformedRecord) {
		s.diag.Error("Unusable record - stopping scan",
			"source", s.source,
			"offset", off,
			"error", err)
		return nil
	}
	return err
}

// Tracks the absolute stream offset for diagnostics
type offsetReader struct {
	r   io.Reader
	off int64
}

func (o *offsetReader) Read(p []byte) (int, error) {
	n, err := o.r.Read(p)
	o.off += int64(n)
	return n, err
}
