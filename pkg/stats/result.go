// Package stats reads the per-barcode assembly statistics written by the
// pipeline and renders them as tables.
package stats

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/liserjrqlxue/goUtil/osUtil"
)

var ErrMissingOutputFile = errors.New(FileName + " file not found")

// Record is one barcode line. Fields the line did not have are empty.
type Record struct {
	Barcode      string
	Status       string
	TotalLength  string
	MeanCoverage string
}

func (r Record) Values() []string {
	return []string{r.Barcode, r.Status, r.TotalLength, r.MeanCoverage}
}

// Path returns the statistics file of an output directory.
func Path(outputDir string) string {
	return filepath.Join(outputDir, FileName)
}

// Load reads and parses the statistics of outputDir. A missing file is
// reported as ErrMissingOutputFile.
func Load(outputDir string) ([]Record, error) {
	var path = Path(outputDir)
	slog.Info("Load", "path", path)
	if !osUtil.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrMissingOutputFile, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(content)), nil
}

// Parse never fails. The first line is a header and is always dropped.
// Every other line becomes a record, including blank ones and lines with
// fewer than four columns. The empty tail after a final newline is not a
// line.
func Parse(content string) (records []Record) {
	var lines = strings.Split(content, "\n")[1:]
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for _, line := range lines {
		records = append(records, parseLine(line))
	}
	return
}

func parseLine(line string) Record {
	var fields = strings.Fields(line)
	var field = func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	return Record{
		Barcode:      field(0),
		Status:       field(1),
		TotalLength:  field(2),
		MeanCoverage: field(3),
	}
}
