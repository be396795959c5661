package search

import (
	"log/slog"
	"time"
)

// evaluator applies the name matcher, content scanner and aggregator to a
// single entry. It holds no mutable state and is safe for concurrent use.
type evaluator struct {
	params     Params
	opts       Options
	searchType SearchType
	names      *NameMatcher
	content    *ContentScanner
	logger     *slog.Logger
}

func newEvaluator(params Params, opts Options, st SearchType) *evaluator {
	ev := &evaluator{
		params:     params,
		opts:       opts,
		searchType: st,
		logger:     params.logger(),
	}
	if params.FilenamePattern != "" {
		ev.names = NewNameMatcher(params.FilenamePattern, params.Mode)
	}
	if params.ContentPattern != "" {
		ev.content = NewContentScanner(params.ContentPattern, params.Mode)
	}
	return ev
}

// wantsType applies the --files-only / --dirs-only restriction.
func (ev *evaluator) wantsType(entry FileEntry) bool {
	if ev.params.DirsOnly && !entry.IsDir {
		return false
	}
	if ev.params.FilesOnly && entry.IsDir {
		return false
	}
	return true
}

func (ev *evaluator) evaluate(entry FileEntry) (SearchResult, bool) {
	nameScore, nameMatched := 0, false
	if ev.names != nil {
		nameScore, nameMatched = ev.names.Score(entry.Name)
	}

	var matches []ContentMatch
	if ev.content != nil && !entry.IsDir && ev.opts.ContentSearchable(entry.FullPath) {
		found, err := ev.content.Scan(entry.FullPath)
		if err != nil {
			ev.logger.Debug("content scan skipped", "path", entry.FullPath, "err", err)
		} else {
			matches = found
		}
	}

	matched, score := Aggregate(ev.searchType, nameScore, nameMatched, matches)
	if !matched {
		return SearchResult{}, false
	}

	result := SearchResult{
		Path:           entry.FullPath,
		Entry:          entry,
		Score:          score,
		ContentMatches: matches,
		SearchType:     ev.searchType,
		HasDetails:     ev.params.WantDetails,
	}
	if !ev.params.WantDetails {
		result.Entry.Size = 0
		result.Entry.Modified = time.Time{}
	}
	return result, true
}

// Search runs the sequential executor: one goroutine walks, scores and
// collects. The token is checked before every entry; on cancellation the walk
// stops and the partial results are ranked exactly like a completed run.
func Search(params Params, opts Options, token *Token) []SearchResult {
	logger := params.logger()
	st, err := DeriveSearchType(params.FilenamePattern, params.ContentPattern)
	if err != nil {
		logger.Warn("search not started", "err", err)
		return nil
	}

	ev := newEvaluator(params, opts, st)
	filter := NewFilter(opts, params.IncludeHidden, token)
	w := newWalker(params.Root, filter, opts, token, logger)
	progress := newProgressPrinter(params.progressWriter(), time.Now())

	var results []SearchResult
	var filesScanned, dirsScanned int64

	w.walk(func(entry FileEntry) bool {
		if token.Cancelled() {
			return false
		}

		if entry.IsDir {
			dirsScanned++
		} else {
			filesScanned++
		}

		if !ev.wantsType(entry) {
			return true
		}

		progress.update(func() string { return scannedLine(filesScanned, dirsScanned) })

		if result, ok := ev.evaluate(entry); ok {
			results = append(results, result)
		}
		return true
	})

	summary := ""
	if token.Cancelled() {
		summary = "Search stopped"
	} else if filesScanned > 0 || dirsScanned > 0 {
		summary = scannedSummary(filesScanned, dirsScanned)
	}
	progress.finish(summary)

	logger.Debug("sequential search finished",
		"root", params.Root,
		"type", st.String(),
		"files", filesScanned,
		"dirs", dirsScanned,
		"matches", len(results),
		"cancelled", token.Cancelled())

	return rankResults(results, params.Limit)
}
