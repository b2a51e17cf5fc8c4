package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	Repo        string       `json:"repo"`
	TrackedFile string       `json:"trackedFile"`
	CacheDir    string       `json:"cacheDir"`
	Site        SiteConfig   `json:"site"`
	Output      OutputConfig `json:"output"`
	Filters     FilterConfig `json:"filters"`
}

// SiteConfig holds presentation metadata shared by the report writers.
type SiteConfig struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// OutputConfig holds the artifact file names, relative to Dir.
type OutputConfig struct {
	Dir                  string `json:"dir"`
	TextFile             string `json:"textFile"`
	CSVFile              string `json:"csvFile"`
	RSSFile              string `json:"rssFile"`
	BattlegroundHTMLFile string `json:"battlegroundHtmlFile"`
	AllStatesHTMLFile    string `json:"allStatesHtmlFile"`
}

// FilterConfig holds state name filtering options.
type FilterConfig struct {
	// Battlegrounds are glob patterns matched against state names to
	// build the filtered HTML page.
	Battlegrounds []string `json:"battlegrounds"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Repo:        ".",
		TrackedFile: "results.json",
		CacheDir:    "_cache",
		Site: SiteConfig{
			URL:   "https://example.com",
			Title: "Election Results Summary",
		},
		Output: OutputConfig{
			Dir:                  ".",
			TextFile:             "battleground-state-changes.txt",
			CSVFile:              "battleground-state-changes.csv",
			RSSFile:              "battleground-state-changes.xml",
			BattlegroundHTMLFile: "battleground-state-changes.html",
			AllStatesHTMLFile:    "all-state-changes.html",
		},
		Filters: FilterConfig{
			Battlegrounds: []string{
				"Alaska",
				"Arizona",
				"Georgia",
				"North Carolina",
				"Nevada",
				"Pennsylvania",
			},
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".tallywatch.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".tallywatch.json"))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, ".tallywatch.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
