package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tallywatch/tallywatch/internal/snapshot"
	"github.com/tallywatch/tallywatch/internal/tally"
)

// Compile-time interface conformance checks.
var (
	_ SeriesWriter = (*TextWriter)(nil)
	_ SeriesWriter = (*CSVWriter)(nil)
	_ SeriesWriter = (*RSSWriter)(nil)
	_ SeriesWriter = (*HTMLWriter)(nil)
)

// Options carries presentation metadata shared by all writers.
type Options struct {
	SiteURL     string
	Title       string
	GeneratedAt time.Time
}

// SeriesWriter renders an aggregated snapshot series to one output
// format.
type SeriesWriter interface {
	Write(w io.Writer, series snapshot.Series, opts Options) error
}

// Summary is the per-snapshot display row shared by the text and HTML
// writers. Hurdle and Trend are placeholder columns kept for output
// compatibility; no hurdle math is computed.
type Summary struct {
	Timestamp      string
	Leader         string
	Margin         string
	VotesRemaining string
	Change         string
	PrecinctsPct   string
	BatchBreakdown string
	Hurdle         string
	Trend          string
}

// Summarize derives the display row for one record. Leader and margin
// come from a defensively re-sorted copy of the candidate list, since
// storage preserves source order.
func Summarize(r tally.Record) Summary {
	ranked := r.RankedCandidates()

	leader := "N/A"
	margin := 0
	if len(ranked) > 0 {
		leader = ranked[0].LastName
	}
	if len(ranked) > 1 {
		margin = ranked[0].Votes - ranked[1].Votes
	}

	votesRemaining := "Unknown"
	if remaining, ok := r.VotesRemaining(); ok {
		votesRemaining = comma(remaining)
	}

	precinctsPct := "N/A"
	if r.PrecinctsTotal > 0 {
		precinctsPct = fmt.Sprintf("%.2f%%", 100*float64(r.PrecinctsReporting)/float64(r.PrecinctsTotal))
	}

	return Summary{
		Timestamp:      r.Timestamp.Format("2006-01-02 15:04"),
		Leader:         leader,
		Margin:         comma(margin),
		VotesRemaining: votesRemaining,
		Change:         comma(r.Votes),
		PrecinctsPct:   precinctsPct,
		BatchBreakdown: fmt.Sprintf("%d/%d", r.PrecinctsReporting, r.PrecinctsTotal),
		Hurdle:         "Unknown",
		Trend:          "n/a",
	}
}

// comma renders n with thousands separators.
func comma(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	if neg {
		return "-" + string(out)
	}
	return string(out)
}
