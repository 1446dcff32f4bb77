package domain

import "fmt"

// Severity of a violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation is one rule breach found by a validator.
// File is empty for findings not tied to the source tree, such as commit history.
type Violation struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
	Hint     string   `json:"hint,omitempty"`
}

// Errorf builds an error-severity violation.
func Errorf(rule, file string, line int, format string, args ...any) Violation {
	return Violation{Rule: rule, Severity: SeverityError, File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Warnf builds a warning-severity violation.
func Warnf(rule, file string, line int, format string, args ...any) Violation {
	return Violation{Rule: rule, Severity: SeverityWarning, File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

// WithHint returns a copy of v carrying a remediation hint.
func (v Violation) WithHint(hint string) Violation {
	v.Hint = hint
	return v
}

// Location renders file:line, or just the file when no line is known.
func (v Violation) Location() string {
	switch {
	case v.File == "":
		return ""
	case v.Line > 0:
		return fmt.Sprintf("%s:%d", v.File, v.Line)
	default:
		return v.File
	}
}

// ToolchainFailure records an external tool that could not produce a usable result.
type ToolchainFailure struct {
	Rule     string `json:"rule"`
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output,omitempty"`
	Message  string `json:"message"`
}
