package bankcsv

import (
	"fmt"
	"os"

	"github.com/savingsmap/bankpipe/pkg/bank"
)

// ReadFile parses a CSV file into headers and records.
func ReadFile(path string) ([]string, []bank.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	headers, records := Parse(string(data))
	return headers, records, nil
}

// WriteFile serializes records and writes them atomically: the content is
// written to a temp file in the same directory, then renamed over path.
func WriteFile(path string, headers []string, records []bank.Record) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(Serialize(headers, records)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// Backup copies the file at path to a sibling backup path before an
// in-place mutation. A missing source is an error: write paths must not
// proceed without a reversible prior state.
func Backup(path, backupPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("backup read %s: %w", path, err)
	}
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return fmt.Errorf("backup write %s: %w", backupPath, err)
	}
	return nil
}
