package tally

import (
	"sort"
	"time"
)

// CandidateTally is one candidate's reported total within a reporting
// unit. LastName carries the feed's stable candidate identifier.
type CandidateTally struct {
	LastName string `json:"last_name"`
	Votes    int    `json:"votes"`
}

// Record is one normalized snapshot of a reporting unit within a race.
// Candidates keeps the order the source document emitted; consumers
// that need leader/runner-up sort a copy via RankedCandidates.
// JSON tags match the on-disk cache row shape.
type Record struct {
	Timestamp          time.Time        `json:"timestamp"`
	StateName          string           `json:"state_name"`
	StateAbbrev        string           `json:"state_abbrev"`
	ElectoralVotes     int              `json:"electoral_votes"`
	Candidates         []CandidateTally `json:"candidates"`
	Votes              int              `json:"votes"`
	ExpectedVotes      int              `json:"expected_votes"`
	PrecinctsTotal     int              `json:"precincts_total"`
	PrecinctsReporting int              `json:"precincts_reporting"`
	Counties           map[string]int   `json:"counties"`
}

// RankedCandidates returns a copy of Candidates sorted by votes
// descending. The sort is stable, so ties keep source order. The
// receiver's slice is not modified.
func (r Record) RankedCandidates() []CandidateTally {
	ranked := make([]CandidateTally, len(r.Candidates))
	copy(ranked, r.Candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Votes > ranked[j].Votes
	})
	return ranked
}

// VotesRemaining returns the estimated outstanding votes. The estimate
// is unknown when the feed reported no expected total.
func (r Record) VotesRemaining() (int, bool) {
	if r.ExpectedVotes <= 0 {
		return 0, false
	}
	return r.ExpectedVotes - r.Votes, true
}
