package dirgrowth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
)

// ErrNotDirectory is returned when the search root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Root is a directory validated as the starting point of a walk.
type Root struct {
	path string
}

// NewRoot validates path as a search root. An empty path means the current directory.
// The check is advisory: the tree may change before it is walked.
func NewRoot(path string) (Root, error) {
	if path == "" {
		path = "."
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return Root{}, fmt.Errorf("accessing path %q: %w", path, err)
	}

	if !info.IsDir() {
		return Root{}, fmt.Errorf("path %q is a file, a directory must be provided: %w", path, ErrNotDirectory)
	}

	return Root{path: path}, nil
}

// Path returns the cleaned root path.
func (r Root) Path() string {
	return r.path
}

func (r Root) String() string {
	return r.path
}

// Entry is a single node visited during a walk.
type Entry struct {
	// Path is the path of the node, rooted at the walk root.
	Path string
	// Type holds the type bits of the node, or of its target if a link was followed.
	Type fs.FileMode
	// Info is the metadata of regular files. Nil for other nodes.
	Info fs.FileInfo
	// Err is set when the node could not be read or stat-ed.
	Err error
}

// IsRegular reports whether the entry is a regular file.
func (e Entry) IsRegular() bool {
	return e.Err == nil && e.Type.IsRegular()
}

// Walker enumerates the entries below a root.
type Walker struct {
	root    Root
	follow  bool
	workers int
}

// NewWalker returns a walker over root. If follow is true, symbolic links are
// followed into their targets; fastwalk skips links that would form a loop.
// workers <= 0 selects fastwalk's default.
func NewWalker(root Root, follow bool, workers int) *Walker {
	return &Walker{root: root, follow: follow, workers: workers}
}

// Walk visits every entry below the root and passes it to emit.
// emit is called from multiple goroutines concurrently.
//
// Per-entry failures are handed to emit as entries with Err set; they do not
// stop the walk by themselves. The walk stops when emit returns an error or
// ctx is done, and Walk returns that error.
//
//nolint:varnamelen // d is standard for DirEntry
func (w *Walker) Walk(ctx context.Context, emit func(Entry) error) error {
	conf := &fastwalk.Config{
		Follow:     w.follow,
		NumWorkers: w.workers,
	}

	return fastwalk.Walk(conf, w.root.path, func(path string, d fs.DirEntry, err error) error {
		// Check cancellation on every callback
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return emit(Entry{Path: path, Err: err})
		}

		return emit(w.entry(path, d))
	})
}

// entry resolves the type and, for regular files, the metadata of d.
//
//nolint:varnamelen // d is standard for DirEntry
func (w *Walker) entry(path string, d fs.DirEntry) Entry {
	typ := d.Type()

	switch {
	case typ&fs.ModeSymlink != 0 && w.follow:
		info, err := fastwalk.StatDirEntry(path, d)
		if err != nil {
			return Entry{Path: path, Type: typ, Err: fmt.Errorf("following link: %w", err)}
		}

		entry := Entry{Path: path, Type: info.Mode().Type()}
		if entry.Type.IsRegular() {
			entry.Info = info
		}

		return entry
	case typ.IsRegular():
		info, err := d.Info()
		if err != nil {
			return Entry{Path: path, Type: typ, Err: fmt.Errorf("reading metadata: %w", err)}
		}

		return Entry{Path: path, Type: typ, Info: info}
	default:
		return Entry{Path: path, Type: typ}
	}
}

// errStopped ends a walk whose consumer stopped iterating.
var errStopped = errors.New("iteration stopped")

// Entries returns the walk as a lazy sequence. The sequence can be ranged over
// once; breaking out of the loop stops the walk. An error ending the walk
// itself is yielded as a final entry with Err set.
func (w *Walker) Entries(ctx context.Context) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		entries := make(chan Entry)
		done := make(chan error, 1)

		go func() {
			defer close(entries)

			done <- w.Walk(ctx, func(e Entry) error {
				select {
				case entries <- e:
					return nil
				case <-ctx.Done():
					return errStopped
				}
			})
		}()

		for e := range entries {
			if !yield(e) {
				cancel()

				for range entries { //nolint:revive // Drain until the walk returns
				}

				return
			}
		}

		if err := <-done; err != nil && !errors.Is(err, errStopped) {
			yield(Entry{Path: w.root.path, Err: err})
		}
	}
}
