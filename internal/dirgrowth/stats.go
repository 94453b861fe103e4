package dirgrowth

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Result holds the outcome of a measurement.
type Result struct {
	// Bytes is the cumulative size of all files modified inside the window.
	Bytes uint64 `json:"bytes"`
	// Files is the number of regular files examined.
	Files int64 `json:"files"`
	// Counted is the number of files whose size was included in Bytes.
	Counted int64 `json:"counted"`
	// Elapsed is the total time taken for the measurement.
	Elapsed time.Duration `json:"elapsed"`
	// Start is the lower bound of the window, if any.
	Start *time.Time `json:"start,omitempty"`
	// End is the upper bound of the window, if any.
	End *time.Time `json:"end,omitempty"`
	// FollowLinks indicates whether symbolic links were followed.
	FollowLinks bool `json:"follow_links"`
}

// Options configures a measurement.
type Options struct {
	// Path is the directory to measure.
	Path string
	// Window bounds the modification times that count.
	Window Window
	// FollowLinks indicates whether to follow symbolic links.
	FollowLinks bool
	// Workers is the degree of parallelism (0 = number of CPUs).
	Workers int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Logger receives debug events. Nil discards them.
	Logger *zerolog.Logger
}

// tally counts files as they are classified. Workers update it without locks.
type tally struct {
	files   atomic.Int64
	counted atomic.Int64
	bytes   atomic.Int64
}

// add records one classified file.
func (t *tally) add(part Partial) {
	t.files.Add(1)

	if part.IsCounted() {
		t.counted.Add(1)
		t.bytes.Add(int64(part.Total())) //nolint:gosec // File sizes fit in int64
	}
}
