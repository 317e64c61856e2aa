// Package lipgloss renders reports as styled terminal output. Styling
// degrades to plain text automatically when the output is not a
// terminal, so the same formatter serves pipes and humans.
package lipgloss

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/geolens"
)

// Grade colors, one per letter.
var gradeColors = map[string]lipgloss.Color{
	"A": lipgloss.Color("#04B575"),
	"B": lipgloss.Color("#2BBBAD"),
	"C": lipgloss.Color("#FFC107"),
	"D": lipgloss.Color("#FF8800"),
	"F": lipgloss.Color("#FF4136"),
}

var (
	refStyle      = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	axisStyle     = lipgloss.NewStyle().Bold(true)
	passStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4136"))
	evidenceStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	driftStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8800")).Bold(true)
)

// Ensure Formatter implements geolens.Formatter at compile time.
var _ geolens.Formatter = (*Formatter)(nil)

// Formatter writes a report as styled terminal output.
type Formatter struct{}

// NewFormatter creates a new Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format writes r to w.
func (f *Formatter) Format(w io.Writer, r *geolens.Report) error {
	if r == nil {
		return geolens.Errorf(geolens.EINVALID, "nil report")
	}

	var sb strings.Builder

	sb.WriteString(refStyle.Render(r.ContentRef))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("analyzed " + r.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString("\n\n")

	sb.WriteString(axisStyle.Render("SEO "))
	sb.WriteString(badge(r.SEO.Score))
	sb.WriteString("   ")
	sb.WriteString(axisStyle.Render("GEO "))
	sb.WriteString(badge(r.GEO.Score))
	sb.WriteString("\n\n")

	writeAxis(&sb, "SEO checks", r.SEO)
	writeAxis(&sb, "GEO checks", r.GEO)
	writeSimulation(&sb, r.AISimulation)

	_, err := io.WriteString(w, sb.String())
	return err
}

// badge renders a score with its grade on a grade-colored background.
func badge(score int) string {
	grade := geolens.Grade(score)
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(gradeColors[grade]).
		Padding(0, 1)
	return style.Render(fmt.Sprintf("%d %s", score, grade))
}

func writeAxis(sb *strings.Builder, name string, axis geolens.AxisScore) {
	passed := len(axis.Results) - len(axis.Failed())

	sb.WriteString(axisStyle.Render(name))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %d of %d passed", passed, len(axis.Results))))
	sb.WriteString("\n")

	width := 0
	for _, res := range axis.Results {
		if len(res.RuleID) > width {
			width = len(res.RuleID)
		}
	}

	for _, res := range axis.Results {
		mark := passStyle.Render("✓")
		if !res.Passed {
			mark = failStyle.Render("✗")
		}
		id := fmt.Sprintf("%-*s", width, res.RuleID)
		fmt.Fprintf(sb, "  %s %s  %s\n", mark, dimStyle.Render(id), res.Message)
		if res.Evidence != "" {
			fmt.Fprintf(sb, "      ↳ %s\n", evidenceStyle.Render(res.Evidence))
		}
	}
	sb.WriteString("\n")
}

func writeSimulation(sb *strings.Builder, sim *geolens.Simulation) {
	if sim == nil {
		return
	}

	sb.WriteString(axisStyle.Render("AI simulation"))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  %q\n", sim.Summary)

	if len(sim.DriftFlags) == 0 {
		sb.WriteString(dimStyle.Render("  no drift detected"))
		sb.WriteString("\n")
		return
	}

	for _, flag := range sim.DriftFlags {
		fmt.Fprintf(sb, "  %s %s", driftStyle.Render(flag.Kind), flag.Claim)
		if flag.Detail != "" {
			fmt.Fprintf(sb, " %s", dimStyle.Render("("+flag.Detail+")"))
		}
		sb.WriteString("\n")
	}
}
