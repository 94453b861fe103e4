package dirgrowth

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile creates a file of size bytes at path with the given modification time.
func writeFile(t *testing.T, path string, size int, mtime time.Time) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

// symlink creates a symbolic link, skipping the test where links are unavailable.
func symlink(t *testing.T, target, link string) {
	t.Helper()

	if err := os.Symlink(target, link); err != nil {
		if runtime.GOOS == "windows" {
			t.Skipf("symlinks unavailable: %v", err)
		}

		require.NoError(t, err)
	}
}

// scenarioTree builds a directory with A (500 bytes, 2024-01-01) and B (1500 bytes, 2024-06-01).
func scenarioTree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bin"), 500, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	writeFile(t, filepath.Join(dir, "b.bin"), 1500, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	return dir
}

// fileInfo is a fixed fs.FileInfo for feeding entries to the aggregator directly.
type fileInfo struct {
	name  string
	size  int64
	mtime time.Time
}

func (f fileInfo) Name() string       { return f.name }
func (f fileInfo) Size() int64        { return f.size }
func (f fileInfo) Mode() fs.FileMode  { return 0o644 }
func (f fileInfo) ModTime() time.Time { return f.mtime }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

func fileEntry(name string, size int64, mtime time.Time) Entry {
	return Entry{Path: name, Type: 0, Info: fileInfo{name: name, size: size, mtime: mtime}}
}

// safeBuffer is a bytes.Buffer safe for concurrent writers.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
