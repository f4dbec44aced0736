// Package results owns the consolidated CSV results file: header-first
// creation, one row per successful invocation, flushed as written so a
// crash mid-sweep loses at most the in-flight row.
package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Header names the output columns: the two swept parameters first, then
// the open-timing metrics the benchmark reports.
var Header = []string{"lambda", "tau", "t_open_1_8", "t_open_1_4", "t_open_1_2"}

// File is an open results file. A single writer owns it for the
// sweep's duration; concurrent workers never touch it directly.
type File struct {
	f *os.File
	w *csv.Writer
}

// Create makes the results file (and any missing parent directories),
// writes the header row, and leaves the file open for appending data
// rows.
func Create(path string) (*File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create results file %s: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(Header); err != nil {
		f.Close()

		return nil, fmt.Errorf("write header: %w", err)
	}

	w.Flush()

	if err := w.Error(); err != nil {
		f.Close()

		return nil, fmt.Errorf("flush header: %w", err)
	}

	return &File{f: f, w: w}, nil
}

// ParseRow splits one line of benchmark output into its field values.
// The surrounding whitespace is stripped and the line split naively on
// commas; fields are not validated beyond the line being non-empty.
func ParseRow(raw string) ([]string, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil, fmt.Errorf("empty benchmark output")
	}

	return strings.Split(line, ","), nil
}

// WriteRow appends the raw output line as one CSV row and flushes it
// immediately, so tailing the file shows near-real-time progress.
func (f *File) WriteRow(raw string) error {
	fields, err := ParseRow(raw)
	if err != nil {
		return err
	}

	if err := f.w.Write(fields); err != nil {
		return fmt.Errorf("write row: %w", err)
	}

	f.w.Flush()

	if err := f.w.Error(); err != nil {
		return fmt.Errorf("flush row: %w", err)
	}

	return nil
}

// Close flushes any buffered output and closes the file.
func (f *File) Close() error {
	f.w.Flush()

	if err := f.w.Error(); err != nil {
		f.f.Close()

		return err
	}

	return f.f.Close()
}
