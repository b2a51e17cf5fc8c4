package report

import (
	"testing"
	"time"

	"github.com/tallywatch/tallywatch/internal/snapshot"
	"github.com/tallywatch/tallywatch/internal/tally"
)

func nevadaRecord(votes int, ts time.Time) tally.Record {
	return tally.Record{
		Timestamp:   ts,
		StateName:   "Nevada",
		StateAbbrev: "NV",
		Candidates: []tally.CandidateTally{
			{LastName: "trumpd", Votes: votes - 20000},
			{LastName: "bidenj", Votes: votes - 10000},
		},
		ElectoralVotes:     6,
		Votes:              votes,
		ExpectedVotes:      1400000,
		PrecinctsTotal:     1900,
		PrecinctsReporting: 475,
		Counties:           map[string]int{},
	}
}

func testSeries() snapshot.Series {
	base := time.Date(2020, 11, 4, 2, 0, 0, 0, time.UTC)
	return snapshot.Series{
		Groups: map[string][]tally.Record{
			"Nevada": {
				nevadaRecord(600000, base),
				nevadaRecord(700000, base.Add(time.Hour)),
			},
			"Georgia": {
				{
					Timestamp: base.Add(30 * time.Minute),
					StateName: "Georgia",
					Counties:  map[string]int{},
				},
			},
		},
	}
}

func testOptions() Options {
	return Options{
		SiteURL:     "https://example.com",
		Title:       "Election Results Summary",
		GeneratedAt: time.Date(2020, 11, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(nevadaRecord(600000, time.Date(2020, 11, 4, 2, 3, 0, 0, time.UTC)))

	if s.Timestamp != "2020-11-04 02:03" {
		t.Errorf("Timestamp = %q", s.Timestamp)
	}
	// Leader comes from the re-sorted copy, not source order.
	if s.Leader != "bidenj" {
		t.Errorf("Leader = %q, expected bidenj", s.Leader)
	}
	if s.Margin != "10,000" {
		t.Errorf("Margin = %q, expected 10,000", s.Margin)
	}
	if s.VotesRemaining != "800,000" {
		t.Errorf("VotesRemaining = %q, expected 800,000", s.VotesRemaining)
	}
	if s.Change != "600,000" {
		t.Errorf("Change = %q, expected 600,000", s.Change)
	}
	if s.PrecinctsPct != "25.00%" {
		t.Errorf("PrecinctsPct = %q, expected 25.00%%", s.PrecinctsPct)
	}
	if s.BatchBreakdown != "475/1900" {
		t.Errorf("BatchBreakdown = %q, expected 475/1900", s.BatchBreakdown)
	}
	if s.Hurdle != "Unknown" || s.Trend != "n/a" {
		t.Errorf("placeholders = %q/%q, expected Unknown and n/a", s.Hurdle, s.Trend)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(tally.Record{Timestamp: time.Date(2020, 11, 4, 0, 0, 0, 0, time.UTC)})

	if s.Leader != "N/A" {
		t.Errorf("Leader = %q, expected N/A", s.Leader)
	}
	if s.Margin != "0" {
		t.Errorf("Margin = %q, expected 0", s.Margin)
	}
	if s.VotesRemaining != "Unknown" {
		t.Errorf("VotesRemaining = %q, expected Unknown", s.VotesRemaining)
	}
	if s.PrecinctsPct != "N/A" {
		t.Errorf("PrecinctsPct = %q, expected N/A", s.PrecinctsPct)
	}
}

func TestSummarize_SingleCandidate(t *testing.T) {
	s := Summarize(tally.Record{
		Candidates: []tally.CandidateTally{{LastName: "solo", Votes: 42}},
	})

	if s.Leader != "solo" {
		t.Errorf("Leader = %q, expected solo", s.Leader)
	}
	if s.Margin != "0" {
		t.Errorf("Margin = %q, expected 0 with no runner-up", s.Margin)
	}
}

func TestComma(t *testing.T) {
	tests := []struct {
		in       int
		expected string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}

	for _, tt := range tests {
		if got := comma(tt.in); got != tt.expected {
			t.Errorf("comma(%d) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
