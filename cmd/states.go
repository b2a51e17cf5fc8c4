package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tallywatch/tallywatch/internal/report"
	"github.com/urfave/cli/v2"
)

// StatesCmd creates the states command, which lists every state seen
// in the history with its latest snapshot.
func StatesCmd() *cli.Command {
	return &cli.Command{
		Name:   "states",
		Usage:  "List states seen in the history with their latest snapshot",
		Flags:  commonFlags(),
		Action: statesAction,
	}
}

func statesAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	series, err := buildSeries(context.Background(), c, cfg)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "State\tSnapshots\tLatest\tLeader")
	for _, state := range series.States() {
		rows := series.Groups[state]
		latest := rows[len(rows)-1]
		s := report.Summarize(latest)
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", state, len(rows), s.Timestamp, s.Leader)
	}
	return tw.Flush()
}
