package dirgrowth

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	root, err := NewRoot(dir + string(filepath.Separator))
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(dir), root.Path())
	assert.Equal(t, root.Path(), root.String())

	root, err = NewRoot("")
	require.NoError(t, err)
	assert.Equal(t, ".", root.Path())
}

func TestNewRootRejectsFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "plain.txt")
	writeFile(t, file, 10, time.Now())

	_, err := NewRoot(file)
	require.ErrorIs(t, err, ErrNotDirectory)
	assert.Contains(t, err.Error(), "is a file")
}

func TestNewRootRejectsMissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewRoot(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func collect(t *testing.T, w *Walker) map[string]Entry {
	t.Helper()

	root := w.root.Path()
	seen := make(map[string]Entry)

	for e := range w.Entries(context.Background()) {
		rel, err := filepath.Rel(root, e.Path)
		require.NoError(t, err)

		seen[filepath.ToSlash(rel)] = e
	}

	return seen
}

func TestWalkerEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "file1.txt"), 8, time.Now())
	writeFile(t, filepath.Join(dir, "subdir", "file2.txt"), 16, time.Now())

	root, err := NewRoot(dir)
	require.NoError(t, err)

	seen := collect(t, NewWalker(root, false, 2))

	for _, e := range seen {
		require.NoError(t, e.Err)
	}

	delete(seen, ".")
	require.Len(t, seen, 3, "file1.txt, subdir, subdir/file2.txt")

	assert.True(t, seen["subdir"].Type.IsDir())
	assert.Nil(t, seen["subdir"].Info)

	file := seen["subdir/file2.txt"]
	assert.True(t, file.IsRegular())
	require.NotNil(t, file.Info)
	assert.Equal(t, int64(16), file.Info.Size())
}

func TestWalkerReportsSymlinksWithoutFollowing(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "target.bin"), 64, time.Now())
	writeFile(t, filepath.Join(outside, "nested", "deep.bin"), 32, time.Now())

	dir := t.TempDir()
	symlink(t, filepath.Join(outside, "target.bin"), filepath.Join(dir, "file-link"))
	symlink(t, filepath.Join(outside, "nested"), filepath.Join(dir, "dir-link"))

	root, err := NewRoot(dir)
	require.NoError(t, err)

	seen := collect(t, NewWalker(root, false, 0))

	require.Contains(t, seen, "file-link")
	assert.NotZero(t, seen["file-link"].Type&fs.ModeSymlink)
	assert.False(t, seen["file-link"].IsRegular())
	assert.NotContains(t, seen, "dir-link/deep.bin")
}

func TestWalkerFollowsSymlinks(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "target.bin"), 64, time.Now())
	writeFile(t, filepath.Join(outside, "nested", "deep.bin"), 32, time.Now())

	dir := t.TempDir()
	symlink(t, filepath.Join(outside, "target.bin"), filepath.Join(dir, "file-link"))
	symlink(t, filepath.Join(outside, "nested"), filepath.Join(dir, "dir-link"))

	root, err := NewRoot(dir)
	require.NoError(t, err)

	seen := collect(t, NewWalker(root, true, 0))

	link := seen["file-link"]
	require.NoError(t, link.Err)
	assert.True(t, link.IsRegular())
	require.NotNil(t, link.Info)
	assert.Equal(t, int64(64), link.Info.Size())

	require.Contains(t, seen, "dir-link/deep.bin")
	assert.True(t, seen["dir-link/deep.bin"].IsRegular())
}

func TestWalkerSurfacesBrokenLinkWhenFollowing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	symlink(t, filepath.Join(dir, "gone"), filepath.Join(dir, "broken"))

	root, err := NewRoot(dir)
	require.NoError(t, err)

	var failed []Entry

	for e := range NewWalker(root, true, 0).Entries(context.Background()) {
		if e.Err != nil {
			failed = append(failed, e)
		}
	}

	require.NotEmpty(t, failed)
	assert.ErrorIs(t, failed[0].Err, fs.ErrNotExist)
}

func TestWalkerEntriesStopsOnBreak(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range 50 {
		writeFile(t, filepath.Join(dir, "d", string(rune('a'+i%26))+string(rune('a'+i/26))), 1, time.Now())
	}

	root, err := NewRoot(dir)
	require.NoError(t, err)

	count := 0

	for range NewWalker(root, false, 4).Entries(context.Background()) {
		count++
		if count == 3 {
			break
		}
	}

	assert.Equal(t, 3, count)
}

func TestWalkerWalkStopsOnEmitError(t *testing.T) {
	t.Parallel()

	dir := scenarioTree(t)

	root, err := NewRoot(dir)
	require.NoError(t, err)

	stop := os.ErrClosed

	err = NewWalker(root, false, 1).Walk(context.Background(), func(Entry) error {
		return stop
	})
	require.ErrorIs(t, err, stop)
}

func TestWalkerWalkHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	root, err := NewRoot(scenarioTree(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = NewWalker(root, false, 1).Walk(ctx, func(Entry) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
