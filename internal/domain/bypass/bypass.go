// Package bypass detects attempts to disable or skip the validation pipeline
// in hook scripts, validator scripts, command shortcuts and commit history.
package bypass

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/openkraft/rulegate/internal/domain"
)

const (
	RuleSkipPattern      = "bypass/skip-pattern"
	RuleSwallowedFailure = "bypass/swallowed-failure"
	RuleNoVerify         = "bypass/no-verify"
	RuleCommitMessage    = "bypass/commit-message"
	RuleEnvVar           = "bypass/env-var"
	RuleMissingHook      = "bypass/missing-hook"
	RuleMissingHookStep  = "bypass/missing-hook-step"
)

// Verdict is the outcome of classifying one line.
type Verdict string

const (
	VerdictClean   Verdict = "clean"
	VerdictExempt  Verdict = "exempt"
	VerdictFlagged Verdict = "flagged"
)

// LineResult explains a verdict: the table row that fired and, for flagged
// lines, the rule to report.
type LineResult struct {
	Verdict Verdict
	Row     string
	Rule    string
}

// prohibitionMarkers identify lines that talk about bypassing in order to
// forbid it, such as error messages printed by a validator.
var prohibitionMarkers = []string{
	"❌", "⚠️", "🚫",
	"ERROR", "FORBIDDEN", "PROHIBITED",
	"CANNOT SKIP", "DOES NOT ALLOW", "NOT ALLOW",
	"must not skip", "should not skip",
	"REQUIRED:", "Running no ",
}

var (
	bypassKeyword    = regexp.MustCompile(`(?i)skip|bypass|disable|no-verify`)
	commentedCommand = regexp.MustCompile(`(?:^|\s)(?:#|//)\s*(?:npm\s+run|npx|node|yarn|pnpm|sh|bash|echo|exit|git)\b`)
	conditional      = regexp.MustCompile(`^\s*(?:if|elif|then|case|while)\b|\[\[|\[\s|&&|\|\|`)
	envCheck         = regexp.MustCompile(`\$\{?[A-Za-z_][A-Za-z0-9_]*|process\.env`)
	skipDirective    = regexp.MustCompile(`(?i)\bskip(?:ping)?\s+(?:step|check|validation|tests?|hooks?)\b`)
	swallowed        = regexp.MustCompile(`(?:npm\s+run|npx|node|yarn|pnpm)\s+\S*(?:lint|type-check|validate|test|build)\S*.*\|\|\s*(?:true|exit\s+0|:)\s*(?:;|$|#)`)
)

// lineRule is one row of the line decision table.
type lineRule struct {
	name    string
	verdict Verdict
	rule    string
	match   func(d *Detector, line string) bool
}

// Detector classifies artifact lines and emits bypass violations.
type Detector struct {
	markers          []string
	permissionMarker string
	rows             []lineRule
}

// New creates a Detector. selfNames are the names of the validators
// themselves; lines mentioning them are exempt.
func New(selfNames []string, permissionMarker string) *Detector {
	markers := append(append([]string{}, prohibitionMarkers...), selfNames...)
	return &Detector{markers: markers, permissionMarker: permissionMarker, rows: lineRows}
}

// FromConfig creates a Detector from project configuration.
func FromConfig(cfg domain.BypassConfig) *Detector {
	return New(cfg.SelfNames, cfg.PermissionMarker)
}

var lineRows = []lineRule{
	{"blank", VerdictClean, "", func(_ *Detector, l string) bool { return strings.TrimSpace(l) == "" }},
	{"prohibition-marker", VerdictExempt, "", (*Detector).hasMarker},
	{"keyword-in-context", VerdictFlagged, RuleSkipPattern, keywordInContext},
	{"swallowed-failure", VerdictFlagged, RuleSwallowedFailure, func(_ *Detector, l string) bool { return swallowed.MatchString(l) }},
}

// ClassifyLine evaluates the line decision table, first match wins.
// A skip keyword alone never flags a line: it must appear in an executable
// context such as a commented-out command, a conditional or an environment
// variable check.
func (d *Detector) ClassifyLine(line string) LineResult {
	for _, r := range d.rows {
		if r.match(d, line) {
			return LineResult{Verdict: r.verdict, Row: r.name, Rule: r.rule}
		}
	}
	return LineResult{Verdict: VerdictClean, Row: "default"}
}

func (d *Detector) hasMarker(line string) bool {
	for _, m := range d.markers {
		if m != "" && strings.Contains(line, m) {
			return true
		}
	}
	return false
}

func hasProhibition(line string) bool {
	for _, m := range prohibitionMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

func keywordInContext(_ *Detector, line string) bool {
	if !bypassKeyword.MatchString(line) {
		return false
	}
	return commentedCommand.MatchString(line) ||
		conditional.MatchString(line) ||
		envCheck.MatchString(line) ||
		skipDirective.MatchString(line)
}

// CheckScript scans a hook or validator script line by line.
func (d *Detector) CheckScript(file, content string) []domain.Violation {
	var out []domain.Violation
	for i, line := range strings.Split(content, "\n") {
		res := d.ClassifyLine(line)
		if res.Verdict != VerdictFlagged {
			continue
		}
		out = append(out, lineViolation(res.Rule, file, i+1, line))
	}
	return out
}

func lineViolation(rule, file string, line int, text string) domain.Violation {
	trimmed := strings.TrimSpace(text)
	if rule == RuleSwallowedFailure {
		return domain.Errorf(rule, file, line, "validation failure is swallowed: %s", trimmed).
			WithHint("let the command fail the pipeline and fix the underlying issue")
	}
	return domain.Errorf(rule, file, line, "validation skip detected: %s", trimmed).
		WithHint("remove the skip and fix the issue instead")
}

// CheckHook scans the pre-commit hook: skip patterns, --no-verify usage and
// the presence of every required step on an active line.
func (d *Detector) CheckHook(file, content string, requiredSteps []string) []domain.Violation {
	out := d.CheckScript(file, content)

	var active []string
	for i, line := range strings.Split(content, "\n") {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		active = append(active, t)
		if strings.Contains(t, "--no-verify") && !hasProhibition(t) &&
			!strings.Contains(t, "prevent") && !strings.Contains(t, "block") {
			out = append(out, domain.Errorf(RuleNoVerify, file, i+1, "hook contains --no-verify bypass logic"))
		}
	}

	body := strings.Join(active, "\n")
	for _, step := range requiredSteps {
		if !strings.Contains(body, step) {
			out = append(out, domain.Errorf(RuleMissingHookStep, file, 0, "required hook step %q is missing or commented out", step).
				WithHint("run "+step+" in the pre-commit hook"))
		}
	}
	return out
}

// MissingHook reports an absent hook script.
func MissingHook(file string) domain.Violation {
	return domain.Errorf(RuleMissingHook, file, 0, "pre-commit hook not found").
		WithHint("install the hook so every commit runs the validation pipeline")
}

// IsDetectorName reports whether a shortcut or script name belongs to one of
// the bypass detectors, whose sources necessarily spell out the patterns
// they look for.
func IsDetectorName(name string) bool {
	for _, n := range []string{"no-skip", "no-bypass", "no-verify"} {
		if strings.Contains(name, n) {
			return true
		}
	}
	return false
}

// CheckShortcuts scans named command shortcuts. Shortcuts named after a
// bypass detector are skipped.
func (d *Detector) CheckShortcuts(file string, shortcuts map[string]string) []domain.Violation {
	names := make([]string, 0, len(shortcuts))
	for name := range shortcuts {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []domain.Violation
	for _, name := range names {
		cmd := shortcuts[name]
		if IsDetectorName(name) {
			continue
		}
		if strings.Contains(cmd, "--no-verify") {
			out = append(out, domain.Errorf(RuleNoVerify, file, 0, "script %q uses --no-verify", name))
			continue
		}
		if res := d.ClassifyLine(cmd); res.Verdict == VerdictFlagged {
			out = append(out, domain.Errorf(res.Rule, file, 0, "script %q appears to skip validation: %s", name, cmd).
				WithHint("remove the skip from the script"))
		}
	}
	return out
}

var commitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)eslint-disable`),
	regexp.MustCompile(`(?i)bypass`),
	regexp.MustCompile(`(?i)relax.*rule`),
	regexp.MustCompile(`(?i)increase.*max`),
	regexp.MustCompile(`(?i)decrease.*limit`),
	regexp.MustCompile(`(?i)workaround`),
	regexp.MustCompile(`(?i)temporary.*fix`),
	regexp.MustCompile(`(?i)adjust.*config`),
}

// CheckCommitSubjects scans recent commit subjects, newest first.
func (d *Detector) CheckCommitSubjects(subjects []string) []domain.Violation {
	var out []domain.Violation
	for i, s := range subjects {
		if strings.Contains(s, "no-verify") {
			out = append(out, domain.Errorf(RuleNoVerify, "", 0, "commit HEAD~%d mentions --no-verify: %q", i, s))
			continue
		}
		if d.permitted(s) {
			continue
		}
		for _, p := range commitPatterns {
			if p.MatchString(s) {
				out = append(out, domain.Errorf(RuleCommitMessage, "", 0, "commit HEAD~%d suggests a rule bypass: %q", i, s).
					WithHint(fmt.Sprintf("add %s to the commit message if this was approved", d.permissionMarker)))
				break
			}
		}
	}
	return out
}

func (d *Detector) permitted(subject string) bool {
	if d.permissionMarker != "" && strings.Contains(subject, d.permissionMarker) {
		return true
	}
	for _, w := range []string{"permission", "explicit", "user requested"} {
		if strings.Contains(subject, w) {
			return true
		}
	}
	return false
}

// CheckEnv reports bypass environment variables that are set. An entry of
// the form NAME=VALUE only matches that exact value.
func CheckEnv(vars []string, lookup domain.EnvLookup) []domain.Violation {
	var out []domain.Violation
	for _, spec := range vars {
		name, want, exact := strings.Cut(spec, "=")
		val, ok := lookup(name)
		if !ok || val == "" {
			continue
		}
		if exact && val != want {
			continue
		}
		out = append(out, domain.Errorf(RuleEnvVar, "", 0, "bypass environment variable detected: %s=%s", name, val).
			WithHint("unset "+name))
	}
	return out
}
