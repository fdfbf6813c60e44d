// Package output renders check results, reports and the catalog for the
// terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/go-supportscolor"

	"github.com/tkoskela/toolgate/pkg/check"
	"github.com/tkoskela/toolgate/pkg/engine"
	"github.com/tkoskela/toolgate/pkg/pm"
	"github.com/tkoskela/toolgate/pkg/prereq"
)

var (
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
	dim    = "\033[2m"
	reset  = "\033[0m"
)

var (
	presentSummary = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	partialSummary = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	missingSummary = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	remedyHeader   = lipgloss.NewStyle().Bold(true)
	remedyManager  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	remedyCommand  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	catalogName    = lipgloss.NewStyle().Bold(true)
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, yellow, dim, reset = "", "", "", "", ""
	}
}

// PrintResult writes one requirement line with its detail block.
func PrintResult(w io.Writer, r check.Result) {
	var label string
	switch {
	case r.Present():
		label = fmt.Sprintf("%s[OK]%s", green, reset)
	case r.Optional:
		label = fmt.Sprintf("%s[WARN]%s", yellow, reset)
	default:
		label = fmt.Sprintf("%s[MISSING]%s", red, reset)
	}
	fmt.Fprintf(w, "%s %s\n", label, r.Name)

	indent := strings.Repeat(" ", labelWidth(r)+1)
	for _, d := range r.Details {
		fmt.Fprintf(w, "%s%s\n", indent, formatLabel(d))
	}
}

// PrintReport writes the per-item lines (present ones suppressed when
// quiet), a summary line, and remediation blocks when the run failed.
func PrintReport(w io.Writer, rep engine.Report, quiet bool) {
	printed := 0
	for _, r := range rep.Results {
		if quiet && r.Present() {
			continue
		}
		PrintResult(w, r)
		printed++
	}
	if printed > 0 {
		fmt.Fprintln(w)
	}

	missing := 0
	for _, r := range rep.Results {
		if !r.Present() {
			missing++
		}
	}
	switch {
	case missing == 0:
		fmt.Fprintln(w, presentSummary.Render(fmt.Sprintf("All %d requirements present.", len(rep.Results))))
	case rep.Success:
		fmt.Fprintln(w, partialSummary.Render(fmt.Sprintf("%d of %d requirements missing (optional only).", missing, len(rep.Results))))
	default:
		fmt.Fprintln(w, missingSummary.Render(fmt.Sprintf("%d of %d requirements missing.", missing, len(rep.Results))))
	}

	if !rep.Success && len(rep.Remediations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, remedyHeader.Render("To fix, run one of:"))
		for _, rem := range rep.Remediations {
			fmt.Fprintf(w, "\n  %s\n", remedyManager.Render(rem.Manager+":"))
			for _, cmd := range rem.Commands {
				fmt.Fprintf(w, "    %s\n", remedyCommand.Render(cmd))
			}
		}
	}
}

// PrintCatalog renders the requirement list for the list command.
func PrintCatalog(w io.Writer, reqs []prereq.Requirement) {
	for i, r := range reqs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		badge := "required"
		if r.Optional {
			badge = "optional"
		}
		fmt.Fprintf(w, "%s (%s)\n", catalogName.Render(r.Name), badge)
		fmt.Fprintf(w, "    probe: %s\n", r.Probe.Describe())
		if r.EnvVar != "" {
			fmt.Fprintf(w, "    env: %s\n", r.EnvVar)
		}
		for _, m := range pm.Registry() {
			if cmd := r.Install[m.ID]; cmd != "" {
				fmt.Fprintf(w, "    %s: %s\n", m.ID, cmd)
			}
		}
	}
}

// labelWidth is the visible width of the status label, for detail
// indentation.
func labelWidth(r check.Result) int {
	switch {
	case r.Present():
		return len("[OK]")
	case r.Optional:
		return len("[WARN]")
	default:
		return len("[MISSING]")
	}
}

// formatLabel dims a leading "label:" prefix in a detail line.
func formatLabel(detail string) string {
	if dim == "" {
		return detail
	}
	i := strings.Index(detail, ": ")
	if i < 0 {
		return detail
	}
	return dim + detail[:i+1] + reset + detail[i+1:]
}
