package report

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
)

func TestRSSWriter(t *testing.T) {
	var buf bytes.Buffer

	if err := (&RSSWriter{}).Write(&buf, testSeries(), testOptions()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(buf.Bytes(), &feed); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}

	if feed.Version != "2.0" {
		t.Errorf("rss version = %q, expected 2.0", feed.Version)
	}
	if feed.Channel.Title != "Election Results Summary" {
		t.Errorf("channel title = %q", feed.Channel.Title)
	}
	if feed.Channel.Link != "https://example.com" {
		t.Errorf("channel link = %q", feed.Channel.Link)
	}
	if len(feed.Channel.Items) != 2 {
		t.Fatalf("got %d items, expected 2", len(feed.Channel.Items))
	}

	// Items are alphabetical by state; each is built from the state's
	// earliest snapshot.
	nevada := feed.Channel.Items[1]
	if !strings.HasPrefix(nevada.Description, "Nevada: bidenj +600000") {
		t.Errorf("item description = %q", nevada.Description)
	}
	if nevada.GUID.IsPermaLink != "false" {
		t.Errorf("guid isPermaLink = %q, expected false", nevada.GUID.IsPermaLink)
	}
	if !strings.HasPrefix(nevada.GUID.Value, "Nevada@") {
		t.Errorf("guid = %q, expected Nevada@<unix>", nevada.GUID.Value)
	}
}

func TestRSSWriter_SkipsEmptyGroups(t *testing.T) {
	series := testSeries()
	series.Groups["Empty State"] = nil

	var buf bytes.Buffer
	if err := (&RSSWriter{}).Write(&buf, series, testOptions()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(buf.Bytes(), &feed); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}
	if len(feed.Channel.Items) != 2 {
		t.Errorf("got %d items, expected 2 (empty group skipped)", len(feed.Channel.Items))
	}
}
