package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/openkraft/rulegate/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success).Bold(true)
	failStyle     = lipgloss.NewStyle().Foreground(danger).Bold(true)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	ruleStyle     = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(fg).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats one validator report for the terminal, grouped by file.
func RenderReport(r *domain.Report) string {
	var b strings.Builder

	title := headerStyle.Render("rulegate " + r.Validator)
	subtitle := dimStyle.Render(r.Root)
	if r.Commit != "" {
		subtitle += dimStyle.Render("  @ " + shortHash(r.Commit))
	}
	verdict := passStyle.Render("PASSED")
	if !r.Passed() {
		verdict = failStyle.Render("FAILED")
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	renderFailures(&b, r.Failures)

	groups := r.ByFile()
	if len(groups) == 0 && len(r.Failures) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n\n")
		return b.String()
	}

	for _, g := range groups {
		name := g.File
		if name == "" {
			name = "(project)"
		}
		b.WriteString("  " + fileStyle.Render(name) + "\n")
		for _, v := range g.Violations {
			renderViolation(&b, v)
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine + "\n")
	b.WriteString("  " + r.Summary() + "\n\n")
	return b.String()
}

// RenderSuite formats several reports followed by an overall verdict.
func RenderSuite(reports []*domain.Report) string {
	var b strings.Builder
	failed := 0
	for _, r := range reports {
		b.WriteString(RenderReport(r))
		if !r.Passed() {
			failed++
		}
	}
	b.WriteString("  " + separatorLine + "\n")
	if failed == 0 {
		fmt.Fprintf(&b, "  %s %s\n", passStyle.Render("✓"), titleStyle.Render(fmt.Sprintf("all %d validators passed", len(reports))))
	} else {
		fmt.Fprintf(&b, "  %s %s\n", failStyle.Render("✗"), titleStyle.Render(fmt.Sprintf("%d of %d validators failed", failed, len(reports))))
	}
	return b.String()
}

// RenderClassification explains the decision for one import target.
func RenderClassification(target string, class domain.ImportClass, row string) string {
	style := passStyle
	if class.Forbidden() {
		style = failStyle
	}
	return fmt.Sprintf("  %s  %s  %s\n", titleStyle.Render(target), style.Render(string(class)), dimStyle.Render("("+row+")"))
}

func renderFailures(b *strings.Builder, failures []domain.ToolchainFailure) {
	for _, f := range failures {
		fmt.Fprintf(b, "  %s %s\n", failStyle.Render("✗ toolchain"), titleStyle.Render(f.Message))
		fmt.Fprintf(b, "    %s %s\n", dimStyle.Render("command:"), f.Command)
		fmt.Fprintf(b, "    %s %d\n", dimStyle.Render("exit code:"), f.ExitCode)
		if out := lastLines(f.Output, 10); out != "" {
			for _, line := range strings.Split(out, "\n") {
				b.WriteString("    " + faintStyle.Render("│ ") + line + "\n")
			}
		}
		b.WriteString("\n")
	}
}

func renderViolation(b *strings.Builder, v domain.Violation) {
	loc := "     "
	if v.Line > 0 {
		loc = padRight(fmt.Sprintf("%d", v.Line), 5)
	}
	fmt.Fprintf(b, "    %s %s %s  %s\n",
		severityTag(v.Severity),
		dimStyle.Render(loc),
		v.Message,
		ruleStyle.Render(v.Rule),
	)
	if v.Hint != "" {
		fmt.Fprintf(b, "          %s\n", hintStyle.Render("→ "+v.Hint))
	}
}

func severityTag(severity domain.Severity) string {
	if severity == domain.SeverityWarning {
		return warnTagStyle.Render("warn ")
	}
	return errorTagStyle.Render("error")
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
