package cmd

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/tallywatch/tallywatch/config"
	"github.com/tallywatch/tallywatch/internal/report"
	"github.com/tallywatch/tallywatch/internal/snapshot"
	"github.com/urfave/cli/v2"
)

// ReportCmd creates the report command, which runs the full pipeline
// and writes every artifact.
func ReportCmd() *cli.Command {
	return &cli.Command{
		Name:   "report",
		Usage:  "Generate text, CSV, RSS and HTML reports from the tracked file's history",
		Flags:  append(commonFlags(), reportFlags()...),
		Action: reportAction,
	}
}

func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "out-dir",
			Aliases: []string{"o"},
			Usage:   "Directory to write report artifacts into",
		},
		&cli.StringSliceFlag{
			Name:  "battleground",
			Usage: "State name pattern for the battleground page (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:  "site-url",
			Usage: "Public URL advertised in the text report and RSS feed",
		},
	}
}

func reportAction(c *cli.Context) error {
	start := time.Now()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	color.Green("Reading history of %s in %s", cfg.TrackedFile, cfg.Repo)

	series, err := buildSeries(context.Background(), c, cfg)
	if err != nil {
		return err
	}

	color.Green("Aggregated %d snapshots across %d states", series.Len(), len(series.Groups))

	if err := writeArtifacts(series, cfg); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nCompleted in %s\n", time.Since(start))
	return nil
}

func writeArtifacts(series snapshot.Series, cfg *config.Config) error {
	opts := report.Options{
		SiteURL:     cfg.Site.URL,
		Title:       cfg.Site.Title,
		GeneratedAt: time.Now(),
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	battlegrounds := report.Filter(series, cfg.Filters.Battlegrounds)

	battlegroundLink := template.HTML(fmt.Sprintf(
		`Data for all states is <a href="%s">also available</a>.`, cfg.Output.AllStatesHTMLFile))
	allStatesLink := template.HTML(fmt.Sprintf(
		`View <a href="%s">battleground states only</a>.`, cfg.Output.BattlegroundHTMLFile))

	artifacts := []struct {
		file   string
		series snapshot.Series
		writer report.SeriesWriter
	}{
		{cfg.Output.TextFile, series, &report.TextWriter{}},
		{cfg.Output.CSVFile, series, &report.CSVWriter{}},
		{cfg.Output.RSSFile, series, &report.RSSWriter{}},
		{cfg.Output.BattlegroundHTMLFile, battlegrounds, &report.HTMLWriter{CrossLink: battlegroundLink}},
		{cfg.Output.AllStatesHTMLFile, series, &report.HTMLWriter{CrossLink: allStatesLink}},
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.Output.Dir, a.file)
		if err := writeArtifact(path, a.series, a.writer, opts); err != nil {
			return fmt.Errorf("write %s: %w", a.file, err)
		}
		fmt.Printf("  wrote %s\n", path)
	}

	return nil
}

func writeArtifact(path string, series snapshot.Series, w report.SeriesWriter, opts report.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := w.Write(f, series, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
