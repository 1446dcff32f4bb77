// Package coveragereport reads istanbul coverage output: the per-file
// summary written by the json-summary reporter, or the raw per-file maps
// written by the json reporter.
package coveragereport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/openkraft/rulegate/internal/domain"
)

const (
	SummaryFile = "coverage-summary.json"
	FinalFile   = "coverage-final.json"
)

// Reader implements domain.CoverageReader.
type Reader struct{}

func New() *Reader { return &Reader{} }

// Read loads the summary report from reportDir, falling back to the raw
// report. Neither being present is a configuration error.
func (r *Reader) Read(reportDir string) ([]domain.CoverageEntry, error) {
	tried := make([]string, 0, 2)
	for _, name := range []string{SummaryFile, FinalFile} {
		p := filepath.Join(reportDir, name)
		tried = append(tried, p)
		data, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading coverage report: %w", err)
		}
		entries, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p, err)
		}
		return entries, nil
	}
	return nil, domain.NewConfigError("coverage report not found (tried %s, %s)", tried[0], tried[1])
}

// Parse decodes either report format. The "total" entry is skipped and the
// result is sorted by path.
func Parse(data []byte) ([]domain.CoverageEntry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	entries := make([]domain.CoverageEntry, 0, len(raw))
	for key, body := range raw {
		if key == "total" {
			continue
		}
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(body, &probe); err != nil {
			continue
		}
		var (
			e   domain.CoverageEntry
			err error
		)
		if _, ok := probe["statementMap"]; ok {
			e, err = fromFileCoverage(body)
		} else {
			e, err = fromSummary(body)
		}
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", key, err)
		}
		e.Path = key
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// summaryMetric accepts {"pct": n, "total": t} objects as well as bare numbers.
type summaryMetric struct {
	pct float64
}

func (m *summaryMetric) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		m.pct = n
		return nil
	}
	var obj struct {
		Total int             `json:"total"`
		Pct   json.RawMessage `json:"pct"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	if err := json.Unmarshal(obj.Pct, &n); err == nil {
		m.pct = n
		return nil
	}
	// Older istanbul versions write "Unknown" for empty totals.
	if obj.Total == 0 {
		m.pct = 100
	}
	return nil
}

func fromSummary(body []byte) (domain.CoverageEntry, error) {
	var s struct {
		Statements summaryMetric `json:"statements"`
		Branches   summaryMetric `json:"branches"`
		Functions  summaryMetric `json:"functions"`
		Lines      summaryMetric `json:"lines"`
	}
	if err := json.Unmarshal(body, &s); err != nil {
		return domain.CoverageEntry{}, err
	}
	return domain.CoverageEntry{
		Statements: s.Statements.pct,
		Branches:   s.Branches.pct,
		Functions:  s.Functions.pct,
		Lines:      s.Lines.pct,
	}, nil
}

type position struct {
	Line int `json:"line"`
}

type span struct {
	Start position `json:"start"`
}

type fileCoverage struct {
	StatementMap map[string]span  `json:"statementMap"`
	S            map[string]int   `json:"s"`
	F            map[string]int   `json:"f"`
	B            map[string][]int `json:"b"`
}

func fromFileCoverage(body []byte) (domain.CoverageEntry, error) {
	var fc fileCoverage
	if err := json.Unmarshal(body, &fc); err != nil {
		return domain.CoverageEntry{}, err
	}

	var branchHits []int
	for _, counts := range fc.B {
		branchHits = append(branchHits, counts...)
	}

	lines := make(map[int]bool)
	for id, count := range fc.S {
		loc, ok := fc.StatementMap[id]
		if !ok {
			continue
		}
		lines[loc.Start.Line] = lines[loc.Start.Line] || count > 0
	}
	var lineCovered int
	for _, hit := range lines {
		if hit {
			lineCovered++
		}
	}

	return domain.CoverageEntry{
		Statements: percent(countHits(mapValues(fc.S)), len(fc.S)),
		Functions:  percent(countHits(mapValues(fc.F)), len(fc.F)),
		Branches:   percent(countHits(branchHits), len(branchHits)),
		Lines:      percent(lineCovered, len(lines)),
	}, nil
}

func mapValues(m map[string]int) []int {
	out := make([]int, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func countHits(counts []int) int {
	n := 0
	for _, c := range counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// percent rounds to two decimals; an empty total counts as fully covered.
func percent(covered, total int) float64 {
	if total == 0 {
		return 100
	}
	p := float64(covered) * 100 / float64(total)
	return float64(int(p*100+0.5)) / 100
}
