package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MalformedRowError describes a row that could not be mapped onto the
// header. Such rows are dropped and only counted in the Report.
type MalformedRowError struct {
	Line   int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed catalog row at line %d: %s", e.Line, e.Reason)
}

// Report summarizes a parse run.
type Report struct {
	Rows      int                  // Data rows seen (excluding header and comments)
	Kept      int                  // Rows returned
	Unnamed   int                  // Rows dropped for a missing planet name
	Malformed []*MalformedRowError // Rows dropped as malformed
}

// Parse reads catalog text and returns its records. Lines starting with '#'
// are comments, the first remaining line is the header, and rows without a
// planet name are dropped. Malformed or empty input yields an empty slice.
func Parse(r io.Reader) []Record {
	records, _ := ParseReport(r)
	return records
}

// ParseBytes is Parse over an in-memory buffer.
func ParseBytes(data []byte) []Record {
	return Parse(bytes.NewReader(data))
}

// ParseReport is Parse plus a summary of what was dropped.
func ParseReport(r io.Reader) ([]Record, Report) {
	var report Report
	records := make([]Record, 0)

	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var header []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				// Reader failure: keep what we have.
				break
			}
			if header != nil {
				report.Rows++
				report.Malformed = append(report.Malformed, &MalformedRowError{Line: pe.Line, Reason: pe.Err.Error()})
			}
			continue
		}

		if header == nil {
			header = make([]string, len(row))
			for i, h := range row {
				header[i] = cleanField(h)
			}
			continue
		}

		report.Rows++
		line, _ := cr.FieldPos(0)

		if len(row) > len(header) {
			report.Malformed = append(report.Malformed, &MalformedRowError{
				Line:   line,
				Reason: fmt.Sprintf("%d fields for %d columns", len(row), len(header)),
			})
			continue
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[name] = cleanField(row[i])
			}
		}

		rec := Record{fields: fields}
		if rec.PlanetName() == "" {
			report.Unnamed++
			continue
		}
		records = append(records, rec)
	}

	report.Kept = len(records)
	return records, report
}

// cleanField trims whitespace and a single pair of wrapping quotes left
// over by lazy quoting.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}

// GroupByHost groups records by exact host name.
func GroupByHost(records []Record) map[string][]Record {
	groups := make(map[string][]Record)
	for _, r := range records {
		groups[r.Hostname()] = append(groups[r.Hostname()], r)
	}
	return groups
}

// Hosts returns the distinct host names in first-seen order.
func Hosts(records []Record) []string {
	seen := make(map[string]bool)
	var hosts []string
	for _, r := range records {
		h := r.Hostname()
		if seen[h] {
			continue
		}
		seen[h] = true
		hosts = append(hosts, h)
	}
	return hosts
}

// FilterHost returns the records of hostname, matched case-insensitively.
func FilterHost(records []Record, hostname string) []Record {
	var out []Record
	for _, r := range records {
		if r.SameHost(hostname) {
			out = append(out, r)
		}
	}
	return out
}
