package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/tallywatch/tallywatch/internal/snapshot"
)

// CSVWriter renders the full record dump: one row per snapshot record,
// prefixed with the state it was grouped under.
type CSVWriter struct{}

var csvHeader = []string{
	"state",
	"timestamp",
	"state_name",
	"state_abbrev",
	"electoral_votes",
	"candidates",
	"votes",
	"expected_votes",
	"precincts_total",
	"precincts_reporting",
	"counties",
}

// Write outputs the CSV report. Candidate lists and county maps are
// JSON-encoded into their cells.
func (cw *CSVWriter) Write(w io.Writer, series snapshot.Series, opts Options) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, state := range series.States() {
		for _, row := range series.Groups[state] {
			candidates, err := json.Marshal(row.Candidates)
			if err != nil {
				return fmt.Errorf("encode candidates: %w", err)
			}
			counties, err := json.Marshal(row.Counties)
			if err != nil {
				return fmt.Errorf("encode counties: %w", err)
			}

			record := []string{
				state,
				row.Timestamp.Format(time.RFC3339Nano),
				row.StateName,
				row.StateAbbrev,
				fmt.Sprintf("%d", row.ElectoralVotes),
				string(candidates),
				fmt.Sprintf("%d", row.Votes),
				fmt.Sprintf("%d", row.ExpectedVotes),
				fmt.Sprintf("%d", row.PrecinctsTotal),
				fmt.Sprintf("%d", row.PrecinctsReporting),
				string(counties),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
