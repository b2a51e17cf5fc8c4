package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tallywatch/tallywatch/internal/snapshot"
)

// TextWriter renders the plain-text report: a header block followed by
// one table per state, states in alphabetical order.
type TextWriter struct{}

// Write outputs the text report.
func (tw *TextWriter) Write(w io.Writer, series snapshot.Series, opts Options) error {
	header := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(header, "Last updated:\t%s\n", opts.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(header, "Latest batch received:\t(%s)\n", strings.Join(series.States(), ", "))
	fmt.Fprintf(header, "Web version:\t%s\n", opts.SiteURL)
	if err := header.Flush(); err != nil {
		return err
	}

	for _, state := range series.States() {
		fmt.Fprintf(w, "\n%s - Total Votes:\n", state)

		table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, row := range series.Groups[state] {
			s := Summarize(row)
			fmt.Fprintf(table, "%s\t%s leading by %s\tVotes remaining (est.): %s\tChange: %s\tPrecincts reporting: %s\tHurdle for trailing candidate: %s\tTrend: %s\n",
				s.Timestamp,
				s.Leader,
				s.Margin,
				s.VotesRemaining,
				s.Change,
				s.PrecinctsPct,
				s.Hurdle,
				s.Trend,
			)
		}
		if err := table.Flush(); err != nil {
			return err
		}
	}

	return nil
}
