package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/tallywatch/tallywatch/internal/revcache"
	"github.com/urfave/cli/v2"
)

// CacheCmd creates the cache command for inspecting or clearing the
// per-revision parse cache.
func CacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Show or clear the per-revision parse cache",
		Flags: append(commonFlags(),
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Remove all cache entries",
			},
		),
		Action: cacheAction,
	}
}

func cacheAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	store := revcache.NewStore(cfg.CacheDir, revcache.SchemaVersion)

	if c.Bool("clear") {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		color.Green("Cleared cache at %s", cfg.CacheDir)
		return nil
	}

	count, err := store.Count()
	if err != nil {
		return fmt.Errorf("count cache entries: %w", err)
	}
	fmt.Printf("%s: %d entries (schema version %d)\n", cfg.CacheDir, count, revcache.SchemaVersion)
	return nil
}
