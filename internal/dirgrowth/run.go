package dirgrowth

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// entriesPerWorker sizes the buffer between the walk and the aggregator.
const entriesPerWorker = 64

// Classify sizes a single entry against the window.
// Entries carrying an error fail; anything but a regular file is excluded.
func Classify(e Entry, w Window) (Partial, error) {
	if e.Err != nil {
		return Excluded(), fmt.Errorf("walking %q: %w", e.Path, e.Err)
	}

	if !e.Type.IsRegular() {
		return Excluded(), nil
	}

	if e.Info == nil {
		return Excluded(), fmt.Errorf("walking %q: missing file metadata", e.Path)
	}

	if !w.Contains(e.Info.ModTime()) {
		return Excluded(), nil
	}

	return Counted(uint64(max(e.Info.Size(), 0))), nil
}

// Aggregate classifies entries from the channel on the given number of workers
// and reduces the results into one partial. Each worker folds its own share;
// the worker partials are combined once all of them are done.
//
// The first classification error cancels the remaining workers and is returned.
// Aggregate returns once entries is closed or ctx is done.
func Aggregate(ctx context.Context, entries <-chan Entry, w Window, workers int) (Partial, error) {
	return aggregate(ctx, entries, w, workers, nil)
}

//nolint:varnamelen // t is idiomatic for tally
func aggregate(ctx context.Context, entries <-chan Entry, w Window, workers int, t *tally) (Partial, error) {
	workers = max(workers, 1)

	p := pool.NewWithResults[Partial]().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(workers)

	for range workers {
		p.Go(func(ctx context.Context) (Partial, error) {
			acc := Identity()

			for {
				select {
				case <-ctx.Done():
					return acc, ctx.Err()
				case e, ok := <-entries:
					if !ok {
						return acc, nil
					}

					part, err := Classify(e, w)
					if err != nil {
						return acc, err
					}

					if t != nil && e.IsRegular() {
						t.add(part)
					}

					acc = acc.Combine(part)
				}
			}
		})
	}

	parts, err := p.Wait()
	if err != nil {
		return Excluded(), err
	}

	return Reduce(parts), nil
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is
// done or the returned stop function is called. stop returns only after the
// reporter goroutine has exited, so no hook call happens after it.
//
//nolint:varnamelen // t is idiomatic for tally
func startProgressReporter(ctx context.Context, t *tally, hook func(int64, int64), interval time.Duration) (stop func()) {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// Prefer stopping over a tick that raced with it.
				if ctx.Err() != nil {
					return
				}

				hook(t.files.Load(), t.bytes.Load())
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// Run measures the bytes of all regular files below opt.Path whose
// modification time lies inside opt.Window.
//
// The tree is walked with fastwalk while opt.Workers goroutines classify the
// entries in parallel. The first walk, metadata or classification error aborts
// the measurement and no partial result is returned.
//
// Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Result, error) {
	log := zerolog.Nop()
	if opt.Logger != nil {
		log = *opt.Logger
	}

	root, err := NewRoot(opt.Path)
	if err != nil {
		return nil, err
	}

	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	log.Debug().
		Str("root", root.Path()).
		Stringer("window", opt.Window).
		Bool("follow_links", opt.FollowLinks).
		Int("workers", workers).
		Msg("starting measurement")

	if opt.Window.Empty() {
		log.Debug().Msg("start is after end, no file can match")
	}

	counts := &tally{}

	// The reporter must be gone before Run returns so callers can clear its output.
	stopProgress := startProgressReporter(ctx, counts, progressHook, opt.ProgressInterval)
	defer stopProgress()

	start := time.Now()

	walker := NewWalker(root, opt.FollowLinks, workers)
	entries := make(chan Entry, workers*entriesPerWorker)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(entries)

		return walker.Walk(groupCtx, func(e Entry) error {
			if e.Err != nil {
				log.Debug().Err(e.Err).Str("path", e.Path).Msg("error accessing path")
			}

			select {
			case entries <- e:
				return nil
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		})
	})

	var total Partial

	group.Go(func() error {
		part, err := aggregate(groupCtx, entries, opt.Window, workers, counts)
		total = part

		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Bytes:       total.Total(),
		Files:       counts.files.Load(),
		Counted:     counts.counted.Load(),
		Elapsed:     time.Since(start),
		Start:       opt.Window.Start,
		End:         opt.Window.End,
		FollowLinks: opt.FollowLinks,
	}

	log.Debug().
		Uint64("bytes", result.Bytes).
		Int64("files", result.Files).
		Int64("counted", result.Counted).
		Dur("elapsed", result.Elapsed).
		Msg("measurement complete")

	return result, nil
}
