// FILE: fortidec/src/internal/record/envelope.go
package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Each entry in an envelope payload starts with a discarded preamble
// ("logver=... ") up to this marker.
var entryMarker = []byte("date=")

// The stream cannot be re-synchronized past a record whose envelope
// length field is unusable.
var errMalformedRecord = errors.New("malformed record")

// decodeEnvelope decodes one envelope record with the stream positioned
// just past the tag. The TLV body yields a frame-compressed payload
// holding NUL-separated entries; pieces without the "date=" marker are
// header material and are dropped without a diagnostic.
func decodeEnvelope(r io.Reader, off int64, source string, diag Diagnostics) ([][]byte, error) {
	// 2 reserved bytes, then the total record length including tag
	var head [6]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("envelope header: %w", err)
	}
	total := int(binary.BigEndian.Uint32(head[2:6]))
	if total < 8 {
		return nil, fmt.Errorf("%w: envelope length %d", errMalformedRecord, total)
	}

	body := make([]byte, total-8)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("envelope body: %w", err)
	}

	payload := parseTLV(body, off, source, diag)
	if len(payload) == 0 {
		return nil, nil
	}

	var entries [][]byte
	for _, piece := range bytes.Split(payload, []byte{0x00}) {
		parts := bytes.Split(piece, entryMarker)
		if len(parts) != 2 {
			continue
		}
		entry := make([]byte, 0, len(entryMarker)+len(parts[1]))
		entry = append(entry, entryMarker...)
		entry = append(entry, parts[1]...)
		entries = append(entries, entry)
	}
	diag.Debug("Decoded entries from envelope record",
		"source", source,
		"offset", off,
		"count", len(entries))
	return entries, nil
}
