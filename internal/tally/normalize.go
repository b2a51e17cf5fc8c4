package tally

import (
	"errors"
	"fmt"
	"time"

	"github.com/tallywatch/tallywatch/internal/document"
)

// ErrMalformedDocument marks a results document whose shape cannot be
// normalized. Callers treat it as a per-revision failure.
var ErrMalformedDocument = errors.New("malformed results document")

// unknownPlaceholder fills name and code fields the feed omitted.
const unknownPlaceholder = "Unknown"

// Normalize flattens a decoded results document into one Record per
// reporting unit per race. Races and documents with no reporting units
// contribute nothing. A reporting unit appearing in several races
// emits one Record per occurrence; nothing is deduplicated. Output is
// in extraction order, not sorted.
func Normalize(doc document.Value) ([]Record, error) {
	var out []Record

	for _, race := range doc.Field("races").List() {
		updatedAt, ok := race.Field("updated_at").Time()
		if !ok {
			return nil, fmt.Errorf("%w: race missing parseable updated_at", ErrMalformedDocument)
		}
		electoralVotes := race.Field("electoral_votes").Int(0)

		for _, unit := range race.Field("reporting_units").List() {
			out = append(out, recordFromUnit(updatedAt, electoralVotes, unit))
		}
	}

	return out, nil
}

// recordFromUnit builds one Record from a reporting unit, enumerating
// every field and its missing-value default in one place.
func recordFromUnit(updatedAt time.Time, electoralVotes int, unit document.Value) Record {
	rawCandidates := unit.Field("candidates").List()
	candidates := make([]CandidateTally, 0, len(rawCandidates))
	for _, c := range rawCandidates {
		candidates = append(candidates, CandidateTally{
			LastName: c.Field("nyt_id").Str(""),
			Votes:    c.Field("votes").Field("total").Int(0),
		})
	}

	return Record{
		Timestamp:          updatedAt,
		StateName:          unit.Field("name").Str(unknownPlaceholder),
		StateAbbrev:        unit.Field("state_abb").Str(unknownPlaceholder),
		ElectoralVotes:     electoralVotes,
		Candidates:         candidates,
		Votes:              unit.Field("total_votes").Int(0),
		ExpectedVotes:      unit.Field("total_expected_vote").Int(0),
		PrecinctsTotal:     unit.Field("precincts_total").Int(0),
		PrecinctsReporting: unit.Field("precincts_reporting").Int(0),
		Counties:           map[string]int{},
	}
}
