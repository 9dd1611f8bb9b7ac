// Package pipeline holds the plumbing shared by the stage commands:
// config file loading, the standard logger, and fatal-on-missing-input
// file reads.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/savingsmap/bankpipe/pkg/bank"
	"github.com/savingsmap/bankpipe/pkg/bankcsv"
)

// Config is the per-tool configuration file. Every key is optional; the
// zero value runs against ./data.
type Config struct {
	DataDir string `yaml:"data_dir"`
}

// LoadConfig reads an optional config.yaml over defaults. A missing file
// is fine; a malformed one is fatal.
func LoadConfig(path string, logger *slog.Logger) Config {
	cfg := Config{DataDir: "data"}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}

// Path joins the data dir with a file name.
func (c Config) Path(name string) string {
	return filepath.Join(c.DataDir, name)
}

// NewLogger returns the standard text logger on stderr.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// MustReadCSV reads a required input file, exiting with code 1 and a
// message naming the path when it is missing or unreadable. Tools never
// proceed on partial data.
func MustReadCSV(path string) ([]string, []bank.Record) {
	headers, records, err := bankcsv.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "missing required input: %v\n", err)
		os.Exit(1)
	}
	return headers, records
}
