package domain

import (
	"errors"
	"fmt"
	"sort"
)

// Report collects everything a validator found in one run.
type Report struct {
	Validator  string             `json:"validator"`
	Root       string             `json:"root"`
	Commit     string             `json:"commit,omitempty"`
	Violations []Violation        `json:"violations"`
	Failures   []ToolchainFailure `json:"failures,omitempty"`
}

// FileGroup is the set of violations reported against one file.
type FileGroup struct {
	File       string      `json:"file"`
	Violations []Violation `json:"violations"`
}

// NewReport creates an empty report for the named validator.
func NewReport(validator, root string) *Report {
	return &Report{Validator: validator, Root: root, Violations: []Violation{}}
}

func (r *Report) Add(vs ...Violation) {
	r.Violations = append(r.Violations, vs...)
}

func (r *Report) AddFailure(f ToolchainFailure) {
	r.Failures = append(r.Failures, f)
}

// Merge folds another report into r.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
	r.Failures = append(r.Failures, other.Failures...)
}

// Normalize sorts violations by file, line, rule and message and drops
// exact duplicates, so identical input always yields identical output.
func (r *Report) Normalize() {
	sort.SliceStable(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i], r.Violations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		if a.Message != b.Message {
			return a.Message < b.Message
		}
		return a.Severity < b.Severity
	})

	out := r.Violations[:0]
	for i, v := range r.Violations {
		if i > 0 && v == r.Violations[i-1] {
			continue
		}
		out = append(out, v)
	}
	r.Violations = out
}

// ByFile groups violations by file in sorted order. Violations without a
// file are grouped under the empty name first.
func (r *Report) ByFile() []FileGroup {
	r.Normalize()
	var groups []FileGroup
	for _, v := range r.Violations {
		if len(groups) == 0 || groups[len(groups)-1].File != v.File {
			groups = append(groups, FileGroup{File: v.File})
		}
		g := &groups[len(groups)-1]
		g.Violations = append(g.Violations, v)
	}
	return groups
}

// Counts returns the number of error and warning violations.
func (r *Report) Counts() (errs, warns int) {
	for _, v := range r.Violations {
		switch v.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warns++
		}
	}
	return errs, warns
}

// Passed is true when there is no error violation and no toolchain failure.
// Warnings never fail a run.
func (r *Report) Passed() bool {
	errs, _ := r.Counts()
	return errs == 0 && len(r.Failures) == 0
}

// ExitCode maps the report to a process exit status.
func (r *Report) ExitCode() int {
	if r.Passed() {
		return 0
	}
	return 1
}

// Summary is a one-line description of the outcome.
func (r *Report) Summary() string {
	errs, warns := r.Counts()
	if r.Passed() {
		return fmt.Sprintf("%s passed (%d warnings)", r.Validator, warns)
	}
	return fmt.Sprintf("%s failed: %d errors, %d warnings, %d toolchain failures",
		r.Validator, errs, warns, len(r.Failures))
}

// FailedError converts a failing report into an error for command exit codes.
func (r *Report) FailedError() error {
	if r.Passed() {
		return nil
	}
	if len(r.Failures) > 0 {
		return fmt.Errorf("%s: %w", r.Summary(), &ToolchainError{Failure: r.Failures[0]})
	}
	return errors.New(r.Summary())
}
