// FILE: fortidec/src/internal/record/tlv.go
package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Field-id table for envelope records. Only num-logs, unzip-len and
// zbuf drive decoding; the rest are recognized and skipped, their
// values are duplicated inside the log entries themselves.
var tlvFields = []string{
	"",
	"devid",
	"devname",
	"vdom",
	"devtype",
	"logtype",
	"tmzone",
	"fazid",
	"srcip",
	"unused",
	"unused",
	"num-logs",
	"unzip-len",
	"incr-zip",
	"unzip-len-p",
	"prefix",
	"zbuf",
	"logs",
}

// TLV value categories, high nibble of the leading byte.
// 0-2: byte array with 1/2/4-byte big-endian length prefix.
// 3-7: fixed-width integer of 1/2/4/8/16 bytes.
const (
	tlvArray8  = 0
	tlvArray16 = 1
	tlvArray32 = 2
	tlvInt8    = 3
	tlvInt16   = 4
	tlvInt32   = 5
	tlvInt64   = 6
	tlvInt128  = 7
)

// parseTLV walks the envelope body and returns the frame-decompressed
// zbuf payload, or nil on failure. Every failure path emits exactly one
// error diagnostic here; callers emit none. zbuf short-circuits the
// walk, and a body without zbuf yields nil without a diagnostic.
func parseTLV(body []byte, off int64, source string, diag Diagnostics) []byte {
	fail := func(reason string, kv ...any) []byte {
		diag.Error("Skipped record - "+reason,
			append([]any{"source", source, "offset", off}, kv...)...)
		return nil
	}

	p := 0
	unzipLen := 0
	for p < len(body) {
		if len(body)-p < 2 {
			return fail("truncated TLV field header")
		}
		typeHigh := body[p] >> 4
		fieldID := int(body[p+1])
		p += 2

		// The id indexes a fixed table; reject before lookup.
		if fieldID >= len(tlvFields) {
			return fail("TLV field id out of range", "field_id", fieldID)
		}

		var (
			intVal  int64
			arr     []byte
			isArray bool
		)
		switch typeHigh {
		case tlvArray8, tlvArray16, tlvArray32:
			isArray = true
			var alen int
			switch typeHigh {
			case tlvArray8:
				if len(body)-p < 1 {
					return fail("truncated TLV length prefix")
				}
				alen = int(body[p])
				p++
			case tlvArray16:
				if len(body)-p < 2 {
					return fail("truncated TLV length prefix")
				}
				alen = int(int16(binary.BigEndian.Uint16(body[p:])))
				p += 2
			case tlvArray32:
				if len(body)-p < 4 {
					return fail("truncated TLV length prefix")
				}
				alen = int(binary.BigEndian.Uint32(body[p:]))
				p += 4
			}
			if alen < 0 || alen > len(body)-p {
				return fail("TLV array length exceeds body", "length", alen)
			}
			arr = body[p : p+alen]
			p += alen
		case tlvInt8:
			if len(body)-p < 1 {
				return fail("truncated TLV value")
			}
			intVal = int64(int8(body[p]))
			p++
		case tlvInt16:
			if len(body)-p < 2 {
				return fail("truncated TLV value")
			}
			intVal = int64(int16(binary.BigEndian.Uint16(body[p:])))
			p += 2
		case tlvInt32:
			if len(body)-p < 4 {
				return fail("truncated TLV value")
			}
			intVal = int64(int32(binary.BigEndian.Uint32(body[p:])))
			p += 4
		case tlvInt64:
			if len(body)-p < 8 {
				return fail("truncated TLV value")
			}
			intVal = int64(binary.BigEndian.Uint64(body[p:]))
			p += 8
		case tlvInt128:
			if len(body)-p < 16 {
				return fail("truncated TLV value")
			}
			// Only the low 64 bits are representable; none of the acted-on
			// fields carry values anywhere near that range.
			intVal = int64(binary.BigEndian.Uint64(body[p+8:]))
			p += 16
		default:
			return fail("unknown TLV category", "category", typeHigh)
		}

		switch tlvFields[fieldID] {
		case "unzip-len":
			if isArray {
				return fail("unzip-len encoded as array")
			}
			unzipLen = int(intVal)
		case "num-logs":
			diag.Debug("Envelope record entry count",
				"source", source,
				"offset", off,
				"count", intVal)
		case "zbuf":
			if !isArray {
				return fail("zbuf encoded as integer")
			}
			if unzipLen <= 0 || len(arr) == 0 {
				return fail("zbuf without usable unzip-len",
					"unzip_len", unzipLen,
					"zbuf_len", len(arr))
			}
			out, err := decompressFrame(arr, unzipLen)
			if err != nil {
				return fail("LZ4 frame decompression failed", "error", err)
			}
			// The one buffer of interest; remaining fields are irrelevant
			return out
		}
	}
	return nil
}

// decompressFrame expands an LZ4 frame, bounded by the expected size
// recorded in unzip-len.
func decompressFrame(zbuf []byte, expected int) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(zbuf))
	out, err := io.ReadAll(io.LimitReader(zr, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > expected {
		return nil, fmt.Errorf("decompressed size exceeds expected %d", expected)
	}
	return out, nil
}
