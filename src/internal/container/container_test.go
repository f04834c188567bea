// FILE: fortidec/src/internal/container/container_test.go
package container

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tlog.1706323123.log.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("inner bytes"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "inner bytes", string(data))
}

func TestOpenZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elog.1706323123.log.zst")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = zw.Write([]byte("inner bytes"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "inner bytes", string(data))
}

func TestOpenUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tlog.log")
	require.NoError(t, os.WriteFile(path, []byte("plain"), 0644))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestOpenNotActuallyGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.log.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip data"), 0644))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.log.gz"))
	require.Error(t, err)
}
