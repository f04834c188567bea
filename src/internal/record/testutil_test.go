// FILE: fortidec/src/internal/record/testutil_test.go
package record

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

// Collects diagnostics for assertions
type captureDiag struct {
	infos  []diagEvent
	debugs []diagEvent
	errors []diagEvent
}

type diagEvent struct {
	msg string
	kv  []any
}

func (d *captureDiag) Info(msg string, kv ...any) {
	d.infos = append(d.infos, diagEvent{msg: msg, kv: kv})
}

func (d *captureDiag) Debug(msg string, kv ...any) {
	d.debugs = append(d.debugs, diagEvent{msg: msg, kv: kv})
}

func (d *captureDiag) Error(msg string, kv ...any) {
	d.errors = append(d.errors, diagEvent{msg: msg, kv: kv})
}

// Collects decoded entries
type memSink struct {
	entries [][]byte
}

func (m *memSink) WriteEntry(e []byte) {
	m.entries = append(m.entries, append([]byte(nil), e...))
}

// lz4BlockCompress produces a valid LZ4 block for src. Short inputs the
// encoder deems incompressible are emitted as a literal-only sequence,
// which is equally valid on the wire.
func lz4BlockCompress(t *testing.T, src []byte) []byte {
	t.Helper()
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := lz4.CompressBlock(src, dst, nil)
	require.NoError(t, err)
	if n > 0 {
		return dst[:n]
	}
	var out []byte
	lit := len(src)
	if lit < 15 {
		out = append(out, byte(lit)<<4)
	} else {
		out = append(out, 0xF0)
		for rest := lit - 15; ; rest -= 255 {
			if rest < 255 {
				out = append(out, byte(rest))
				break
			}
			out = append(out, 255)
		}
	}
	return append(out, src...)
}

func lz4FrameCompress(t *testing.T, src []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	_, err := zw.Write(src)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

type blockOpts struct {
	devID   string
	devName string
	vdom    string
	padded  bool
	trailer []byte
	// Overrides the compressed payload when set, for corruption tests
	compressed []byte
}

// buildBlockRecord assembles a complete block record, tag included.
func buildBlockRecord(t *testing.T, entries [][]byte, opts blockOpts) []byte {
	t.Helper()
	var payload []byte
	for _, e := range entries {
		payload = append(payload, e...)
	}
	compressed := opts.compressed
	if compressed == nil {
		compressed = lz4BlockCompress(t, payload)
	}

	head := make([]byte, blockHeaderLen)
	if opts.padded {
		head[0] |= 1 << 2
	}
	head[3] = byte(len(opts.devID))
	head[4] = byte(len(opts.devName))
	head[5] = byte(len(opts.vdom))
	binary.BigEndian.PutUint16(head[6:8], uint16(len(entries)))
	binary.BigEndian.PutUint16(head[8:10], uint16(len(compressed)))
	binary.BigEndian.PutUint16(head[10:12], uint16(len(payload)))

	rec := []byte{0xEC, 0xCF}
	rec = append(rec, head...)
	rec = append(rec, opts.devID...)
	rec = append(rec, opts.devName...)
	rec = append(rec, opts.vdom...)
	for _, e := range entries {
		rec = binary.BigEndian.AppendUint16(rec, uint16(len(e)))
	}
	if opts.padded {
		rec = append(rec, make([]byte, 2*len(entries))...)
	}
	rec = append(rec, compressed...)
	rec = binary.LittleEndian.AppendUint16(rec, uint16(len(opts.trailer)))
	rec = append(rec, opts.trailer...)
	return rec
}

// buildEnvelopeRecord wraps a TLV body in the outer envelope, tag included.
func buildEnvelopeRecord(body []byte) []byte {
	rec := []byte{0xAA, 0x01, 0x00, 0x00}
	rec = binary.BigEndian.AppendUint32(rec, uint32(len(body)+8))
	return append(rec, body...)
}

// TLV body builders

func appendTLVInt16(body []byte, fieldID int, v int16) []byte {
	body = append(body, tlvInt16<<4, byte(fieldID))
	return binary.BigEndian.AppendUint16(body, uint16(v))
}

func appendTLVInt32(body []byte, fieldID int, v int32) []byte {
	body = append(body, tlvInt32<<4, byte(fieldID))
	return binary.BigEndian.AppendUint32(body, uint32(v))
}

func appendTLVArray8(body []byte, fieldID int, data []byte) []byte {
	body = append(body, tlvArray8<<4, byte(fieldID), byte(len(data)))
	return append(body, data...)
}

func appendTLVArray16(body []byte, fieldID int, data []byte) []byte {
	body = append(body, tlvArray16<<4, byte(fieldID))
	body = binary.BigEndian.AppendUint16(body, uint16(len(data)))
	return append(body, data...)
}

const (
	fieldDevID    = 1
	fieldNumLogs  = 11
	fieldUnzipLen = 12
	fieldZbuf     = 16
)
