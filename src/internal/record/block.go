// FILE: fortidec/src/internal/record/block.go
package record

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Block record header, 16 bytes after the tag. Big-endian fields.
// Byte 0 bit 2 selects an extra 2*entryCount padding region after the
// length table; its meaning is undocumented, the bytes are skipped.
const blockHeaderLen = 16

type blockHeader struct {
	padded          bool
	deviceIDLen     int
	deviceNameLen   int
	vdomLen         int
	entryCount      int
	compressedLen   int
	decompressedLen int
}

func parseBlockHeader(head []byte) blockHeader {
	return blockHeader{
		padded:          head[0]>>2&1 == 1,
		deviceIDLen:     int(head[3]),
		deviceNameLen:   int(head[4]),
		vdomLen:         int(head[5]),
		entryCount:      int(binary.BigEndian.Uint16(head[6:8])),
		compressedLen:   int(binary.BigEndian.Uint16(head[8:10])),
		decompressedLen: int(binary.BigEndian.Uint16(head[10:12])),
	}
}

func (h blockHeader) asciiLen() int {
	return h.deviceIDLen + h.deviceNameLen + h.vdomLen
}

func (h blockHeader) bodyLen() int {
	n := h.asciiLen() + 2*h.entryCount + h.compressedLen
	if h.padded {
		n += 2 * h.entryCount
	}
	return n
}

// decodeBlock decodes one block record with the stream positioned just
// past the tag. It always consumes the full record including the
// trailing variable region, so the scanner stays synchronized even when
// the payload fails to decompress; in that case it emits one error
// diagnostic and returns no entries. A non-nil error means the stream
// ended or failed mid-record.
func decodeBlock(r io.Reader, off int64, source string, diag Diagnostics) ([][]byte, error) {
	var head [blockHeaderLen]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("block header: %w", err)
	}
	h := parseBlockHeader(head[:])
	diag.Debug("Block record entry count",
		"source", source,
		"offset", off,
		"count", h.entryCount)

	body := make([]byte, h.bodyLen())
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("block body: %w", err)
	}

	// The body is devid/devname/vdom strings, then the per-entry length
	// table, optional padding, then the LZ4-block payload.
	table := body[h.asciiLen() : h.asciiLen()+2*h.entryCount]
	compressed := body[len(body)-h.compressedLen:]

	entries := splitBlockPayload(compressed, table, h, off, source, diag)

	// Second variable region: 2-byte little-endian length, content ignored.
	// Must be consumed even after a decompression failure or the next tag
	// read lands inside this record.
	var tl [2]byte
	if _, err := io.ReadFull(r, tl[:]); err != nil {
		return nil, fmt.Errorf("block trailer length: %w", err)
	}
	trailerLen := int64(binary.LittleEndian.Uint16(tl[:]))
	if _, err := io.CopyN(io.Discard, r, trailerLen); err != nil {
		return nil, fmt.Errorf("block trailer: %w", err)
	}

	return entries, nil
}

// splitBlockPayload decompresses the LZ4-block payload and slices it
// into entries per the length table. Decompression targets one byte
// more than the declared size, matching observed appliance output.
func splitBlockPayload(compressed, table []byte, h blockHeader, off int64, source string, diag Diagnostics) [][]byte {
	dst := make([]byte, h.decompressedLen+1)
	n, err := lz4.UncompressBlock(compressed, dst)
	if err != nil {
		diag.Error("Skipped record - LZ4 block decompression failed",
			"source", source,
			"offset", off,
			"error", err)
		return nil
	}
	dst = dst[:n]

	switch h.entryCount {
	case 0:
		return nil
	case 1:
		return [][]byte{dst}
	}

	entries := make([][]byte, 0, h.entryCount)
	p := 0
	for i := 0; i < h.entryCount; i++ {
		l := int(binary.BigEndian.Uint16(table[2*i:]))
		if p+l > len(dst) {
			diag.Error("Skipped record - length table exceeds decompressed size",
				"source", source,
				"offset", off)
			return nil
		}
		entries = append(entries, dst[p:p+l])
		p += l
	}
	return entries
}
