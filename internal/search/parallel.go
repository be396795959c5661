package search

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"
)

const poolReleaseTimeout = 5 * time.Second

// parallelCounters are advisory progress telemetry. Matching never reads them.
type parallelCounters struct {
	filesProcessed atomic.Int64
	dirsProcessed  atomic.Int64
	filesMatched   atomic.Int64
	dirsMatched    atomic.Int64
}

// SearchParallel runs the two-phase executor. Phase 1 enumerates filtered
// candidates on the calling goroutine, bounded by opts.MaxCandidates. Phase 2
// evaluates candidates on a worker pool of params.Threads goroutines while a
// reporter goroutine prints progress. Cancellation is soft: a task that has
// started finishes its file, tasks that have not started return immediately.
func SearchParallel(params Params, opts Options, token *Token) []SearchResult {
	logger := params.logger()
	st, err := DeriveSearchType(params.FilenamePattern, params.ContentPattern)
	if err != nil {
		logger.Warn("search not started", "err", err)
		return nil
	}

	threads := params.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	candidates := collectCandidates(params, opts, token)
	if opts.MaxCandidates > 0 && len(candidates) >= opts.MaxCandidates {
		logger.Warn("candidate list truncated", "limit", opts.MaxCandidates)
	}
	logger.Debug("parallel search candidates", "count", len(candidates), "threads", threads)

	ev := newEvaluator(params, opts, st)
	counters := &parallelCounters{}
	slots := make([]*SearchResult, len(candidates))

	process := func(i int) {
		if token.Cancelled() {
			return
		}
		entry := candidates[i]
		if entry.IsDir {
			counters.dirsProcessed.Add(1)
		} else {
			counters.filesProcessed.Add(1)
		}
		if !ev.wantsType(entry) {
			return
		}
		result, ok := ev.evaluate(entry)
		if !ok {
			return
		}
		if entry.IsDir {
			counters.dirsMatched.Add(1)
		} else {
			counters.filesMatched.Add(1)
		}
		slots[i] = &result
	}

	done := make(chan struct{})
	reporter := newParallelReporter(params, counters, len(candidates), token)
	var g errgroup.Group
	g.Go(func() error {
		reporter.run(done)
		return nil
	})

	runOnPool(threads, len(candidates), process, token, logger)

	close(done)
	_ = g.Wait()

	results := make([]SearchResult, 0, counters.filesMatched.Load()+counters.dirsMatched.Load())
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}

	return rankResults(results, params.Limit)
}

// collectCandidates is phase 1: a single-threaded filtered walk that stops
// once the candidate cap is reached.
func collectCandidates(params Params, opts Options, token *Token) []FileEntry {
	filter := NewFilter(opts, params.IncludeHidden, token)
	w := newWalker(params.Root, filter, opts, token, params.logger())

	var candidates []FileEntry
	w.walk(func(entry FileEntry) bool {
		candidates = append(candidates, entry)
		return opts.MaxCandidates <= 0 || len(candidates) < opts.MaxCandidates
	})
	return candidates
}

// runOnPool maps process over [0, n) on an ants pool sized for this call only.
// If the pool cannot be created the work runs inline.
func runOnPool(threads, n int, process func(int), token *Token, logger *slog.Logger) {
	pool, err := ants.NewPool(threads)
	if err != nil {
		logger.Warn("worker pool unavailable, processing inline", "err", err)
		for i := 0; i < n && !token.Cancelled(); i++ {
			process(i)
		}
		return
	}
	defer func() {
		if err := pool.ReleaseTimeout(poolReleaseTimeout); err != nil {
			logger.Debug("worker pool release", "err", err)
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if token.Cancelled() {
			break
		}
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			process(i)
		}); err != nil {
			wg.Done()
			process(i)
		}
	}
	wg.Wait()
}

// parallelReporter polls the counters every progressPollInterval and prints at
// most once per progressInterval until done is closed.
type parallelReporter struct {
	printer  *progressPrinter
	counters *parallelCounters
	total    int
	token    *Token
	poll     time.Duration
}

func newParallelReporter(params Params, counters *parallelCounters, total int, token *Token) *parallelReporter {
	return &parallelReporter{
		printer:  newProgressPrinter(params.progressWriter(), time.Now()),
		counters: counters,
		total:    total,
		token:    token,
		poll:     progressPollInterval,
	}
}

func (pr *parallelReporter) run(done <-chan struct{}) {
	ticker := time.NewTicker(pr.poll)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			pr.printer.finish(pr.summary())
			return
		case <-ticker.C:
			if pr.token.Cancelled() {
				continue
			}
			pr.printer.update(pr.line)
		}
	}
}

func (pr *parallelReporter) line() string {
	processed := pr.counters.filesProcessed.Load() + pr.counters.dirsProcessed.Load()
	return fmt.Sprintf("Processed %d/%d paths, %d files, %d dirs... (Parallel)",
		processed, pr.total, pr.counters.filesMatched.Load(), pr.counters.dirsMatched.Load())
}

func (pr *parallelReporter) summary() string {
	if pr.token.Cancelled() {
		return "Parallel search stopped"
	}
	return fmt.Sprintf("Scanned %d files and %d directories total (parallel processing complete)",
		pr.counters.filesMatched.Load(), pr.counters.dirsMatched.Load())
}
