package revcache

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/tallywatch/tallywatch/internal/tally"
)

// --- Generators ---

func genRecord() *rapid.Generator[tally.Record] {
	return rapid.Custom(func(t *rapid.T) tally.Record {
		candCount := rapid.IntRange(0, 4).Draw(t, "candCount")
		candidates := make([]tally.CandidateTally, 0, candCount)
		for i := 0; i < candCount; i++ {
			candidates = append(candidates, tally.CandidateTally{
				LastName: rapid.StringMatching(`[a-z]{1,12}`).Draw(t, fmt.Sprintf("cand%d", i)),
				Votes:    rapid.IntRange(0, 10_000_000).Draw(t, fmt.Sprintf("votes%d", i)),
			})
		}

		base := time.Date(2020, 11, 3, 0, 0, 0, 0, time.UTC)
		return tally.Record{
			Timestamp: base.Add(time.Duration(rapid.Int64Range(0, 7*24*3600).Draw(t, "offset")) * time.Second),
			StateName: rapid.SampledFrom([]string{
				"Nevada", "Georgia", "Arizona", "Pennsylvania", "Alaska", "North Carolina",
			}).Draw(t, "state"),
			StateAbbrev:        rapid.StringMatching(`[A-Z]{2}`).Draw(t, "abbrev"),
			ElectoralVotes:     rapid.IntRange(0, 55).Draw(t, "electoral"),
			Candidates:         candidates,
			Votes:              rapid.IntRange(0, 10_000_000).Draw(t, "total"),
			ExpectedVotes:      rapid.IntRange(0, 10_000_000).Draw(t, "expected"),
			PrecinctsTotal:     rapid.IntRange(0, 10_000).Draw(t, "precincts"),
			PrecinctsReporting: rapid.IntRange(0, 10_000).Draw(t, "reporting"),
			Counties:           map[string]int{},
		}
	})
}

func genRevision() *rapid.Generator[string] {
	return rapid.StringMatching(`[0-9a-f]{40}`)
}

// --- Property Tests ---

func TestRapidStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	rapid.Check(t, func(t *rapid.T) {
		store := NewStore(dir, SchemaVersion)
		rev := genRevision().Draw(t, "rev")
		rows := rapid.SliceOfN(genRecord(), 0, 8).Draw(t, "rows")

		if err := store.Put(rev, rows); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		got, ok := store.Get(rev)
		if !ok {
			t.Fatal("Get after Put missed")
		}
		if len(got) != len(rows) {
			t.Fatalf("got %d rows, expected %d", len(got), len(rows))
		}
		for i := range rows {
			if !got[i].Timestamp.Equal(rows[i].Timestamp) {
				t.Fatalf("row %d: timestamp %v did not round-trip to %v", i, rows[i].Timestamp, got[i].Timestamp)
			}
			if got[i].StateName != rows[i].StateName || got[i].Votes != rows[i].Votes {
				t.Fatalf("row %d did not round-trip: %+v vs %+v", i, got[i], rows[i])
			}
			if len(got[i].Candidates) != len(rows[i].Candidates) {
				t.Fatalf("row %d: candidate count %d, expected %d", i, len(got[i].Candidates), len(rows[i].Candidates))
			}
			for j := range rows[i].Candidates {
				if got[i].Candidates[j] != rows[i].Candidates[j] {
					t.Fatalf("row %d candidate %d reordered or changed", i, j)
				}
			}
		}
	})
}

func TestRapidStore_VersionBumpInvalidates(t *testing.T) {
	dir := t.TempDir()

	rapid.Check(t, func(t *rapid.T) {
		version := rapid.IntRange(1, 10).Draw(t, "version")
		rev := genRevision().Draw(t, "rev")
		rows := rapid.SliceOfN(genRecord(), 0, 4).Draw(t, "rows")

		if err := NewStore(dir, version).Put(rev, rows); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		if _, ok := NewStore(dir, version+1).Get(rev); ok {
			t.Fatal("bumped-version store read an old entry")
		}
		if _, ok := NewStore(dir, version).Get(rev); !ok {
			t.Fatal("same-version store missed its own entry")
		}
	})
}
