// FILE: fortidec/src/internal/container/container.go
package container

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Appliances archive their logs as tlog/elog files compressed with
// gzip or zstd; anything else is not a log archive.
var ErrUnsupported = errors.New("not a gz/zst log archive")

// Open opens a log archive for sequential reading, dispatching the
// decompressor on the file extension. Closing the returned reader
// closes the underlying file on every path.
func Open(path string) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return openGzip(path)
	case strings.HasSuffix(path, ".zst"):
		return openZstd(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
}

func openGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupported, path, err)
	}
	return &reader{
		Reader: zr,
		close: func() error {
			err := zr.Close()
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}, nil
}

func openZstd(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	zr, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupported, path, err)
	}
	return &reader{
		Reader: zr,
		close: func() error {
			zr.Close()
			return f.Close()
		},
	}, nil
}

type reader struct {
	io.Reader
	close func() error
}

func (r *reader) Close() error {
	return r.close()
}
