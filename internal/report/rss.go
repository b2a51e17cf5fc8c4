package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/tallywatch/tallywatch/internal/snapshot"
)

// RSSWriter renders an RSS 2.0 feed with one item per state, built
// from the state's earliest snapshot.
type RSSWriter struct{}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Description string  `xml:"description"`
	PubDate     string  `xml:"pubDate"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Write outputs the RSS feed.
func (rw *RSSWriter) Write(w io.Writer, series snapshot.Series, opts Options) error {
	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:         opts.Title,
			Link:          opts.SiteURL,
			Description:   "Latest results",
			LastBuildDate: opts.GeneratedAt.UTC().Format("Mon, 02 Jan 2006 15:04:05 -0700"),
		},
	}

	for _, state := range series.States() {
		rows := series.Groups[state]
		if len(rows) == 0 {
			continue
		}

		first := rows[0]
		leader := "N/A"
		if ranked := first.RankedCandidates(); len(ranked) > 0 {
			leader = ranked[0].LastName
		}

		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Description: fmt.Sprintf("%s: %s +%d", state, leader, first.Votes),
			PubDate:     first.Timestamp.UTC().Format("Mon, 02 Jan 2006 15:04:05 -0700"),
			GUID: rssGUID{
				IsPermaLink: "false",
				Value:       fmt.Sprintf("%s@%d", state, first.Timestamp.Unix()),
			},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}
