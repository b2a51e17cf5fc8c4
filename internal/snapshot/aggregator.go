package snapshot

import (
	"context"
	"fmt"
	"sort"

	"github.com/tallywatch/tallywatch/internal/document"
	"github.com/tallywatch/tallywatch/internal/tally"
)

// Lister enumerates the revisions that touched the tracked file.
type Lister interface {
	Revisions(ctx context.Context, path string) ([]string, error)
}

// Fetcher reads the tracked file's content at one revision.
type Fetcher interface {
	Show(ctx context.Context, rev, path string) ([]byte, error)
}

// Cache stores normalized records per revision. Get reports a miss for
// absent, undecodable, and version-mismatched entries alike.
type Cache interface {
	Get(rev string) ([]tally.Record, bool)
	Put(rev string, rows []tally.Record) error
}

// Options configures an Aggregator.
type Options struct {
	// TrackedFile is the repository-relative path of the results file.
	TrackedFile string
	// Warnf receives per-revision failures that were skipped. Nil
	// discards them.
	Warnf func(format string, args ...any)
}

// Aggregator reconstructs the full snapshot series from the tracked
// file's revision history, serving each revision from the cache when a
// valid entry exists and re-deriving it otherwise.
type Aggregator struct {
	lister  Lister
	fetcher Fetcher
	cache   Cache
	opts    Options
}

// NewAggregator wires an aggregator from its collaborators.
func NewAggregator(lister Lister, fetcher Fetcher, cache Cache, opts Options) *Aggregator {
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}
	return &Aggregator{lister: lister, fetcher: fetcher, cache: cache, opts: opts}
}

// Series is the aggregated output: records bucketed by state name,
// time-ordered within each bucket.
type Series struct {
	Groups map[string][]tally.Record
}

// States returns the state names seen, sorted.
func (s Series) States() []string {
	names := make([]string, 0, len(s.Groups))
	for name := range s.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of records across all states.
func (s Series) Len() int {
	n := 0
	for _, rows := range s.Groups {
		n += len(rows)
	}
	return n
}

// Aggregate walks every revision of the tracked file, concatenates
// their records, sorts by timestamp ascending (stable, so records from
// earlier revisions keep their place on ties) and groups by state
// name. A revision that cannot be fetched or normalized is logged and
// skipped; only a failure to enumerate revisions at all is fatal.
func (a *Aggregator) Aggregate(ctx context.Context) (Series, error) {
	revs, err := a.lister.Revisions(ctx, a.opts.TrackedFile)
	if err != nil {
		return Series{}, fmt.Errorf("list revisions of %s: %w", a.opts.TrackedFile, err)
	}

	var all []tally.Record
	for _, rev := range revs {
		rows, err := a.revisionRecords(ctx, rev)
		if err != nil {
			a.opts.Warnf("skipping revision %s: %v", rev, err)
			continue
		}
		all = append(all, rows...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})

	groups := make(map[string][]tally.Record)
	for _, row := range all {
		groups[row.StateName] = append(groups[row.StateName], row)
	}

	return Series{Groups: groups}, nil
}

// revisionRecords returns one revision's records, from cache when
// possible. Freshly derived records are written back before use; a
// failed write-back is reported but does not discard the records,
// since the next run simply re-derives them.
func (a *Aggregator) revisionRecords(ctx context.Context, rev string) ([]tally.Record, error) {
	if rows, ok := a.cache.Get(rev); ok {
		return rows, nil
	}

	blob, err := a.fetcher.Show(ctx, rev, a.opts.TrackedFile)
	if err != nil {
		return nil, err
	}

	doc, err := document.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tally.ErrMalformedDocument, err)
	}

	rows, err := tally.Normalize(doc)
	if err != nil {
		return nil, err
	}

	if err := a.cache.Put(rev, rows); err != nil {
		a.opts.Warnf("cache write for revision %s failed: %v", rev, err)
	}

	return rows, nil
}
