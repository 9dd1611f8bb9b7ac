package bankcsv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/savingsmap/bankpipe/pkg/bank"
)

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banks.csv")

	headers := []string{"name", "country_code"}
	records := []bank.Record{
		{"name": "Bank A", "country_code": "FR"},
		{"name": "Bank B", "country_code": "NO"},
	}
	if err := WriteFile(path, headers, records); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	gotHeaders, gotRecords, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(gotHeaders) != 2 || len(gotRecords) != 2 {
		t.Fatalf("got %v / %d records", gotHeaders, len(gotRecords))
	}
	if gotRecords[1]["name"] != "Bank B" {
		t.Fatalf("records = %v", gotRecords)
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file should have been renamed away")
	}
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "master.csv")
	dst := filepath.Join(dir, "master.csv.backup.csv")

	if err := os.WriteFile(src, []byte("name\nBank A\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Backup(src, dst); err != nil {
		t.Fatalf("Backup: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(data) != "name\nBank A\n" {
		t.Fatalf("backup content = %q", data)
	}
}

func TestBackupMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Backup(filepath.Join(dir, "missing.csv"), filepath.Join(dir, "out.csv"))
	if err == nil {
		t.Fatal("expected error when source is missing")
	}
}
