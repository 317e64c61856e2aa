// Package markdown renders reports as Markdown documents, suitable for
// checking into a repo or pasting into an issue.
package markdown

import (
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/geolens"
	"github.com/nao1215/markdown"
)

// Ensure Formatter implements geolens.Formatter at compile time.
var _ geolens.Formatter = (*Formatter)(nil)

// Formatter writes a report as a Markdown document.
type Formatter struct{}

// NewFormatter creates a new Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format writes r to w as Markdown.
func (f *Formatter) Format(w io.Writer, r *geolens.Report) error {
	if r == nil {
		return geolens.Errorf(geolens.EINVALID, "nil report")
	}

	md := markdown.NewMarkdown(w)

	md.H1("Content Analysis Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Content", "`" + r.ContentRef + "`"},
			{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	writeScores(md, r)
	writeAxis(md, "SEO Results", r.SEO)
	writeAxis(md, "GEO Results", r.GEO)
	writeSimulation(md, r.AISimulation)

	return md.Build()
}

func writeScores(md *markdown.Markdown, r *geolens.Report) {
	md.H2("Scores")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Axis", "Score", "Grade"},
		Rows: [][]string{
			{"SEO", strconv.Itoa(r.SEO.Score), geolens.Grade(r.SEO.Score)},
			{"GEO", strconv.Itoa(r.GEO.Score), geolens.Grade(r.GEO.Score)},
		},
	})
	md.PlainText("")

	failed := len(r.SEO.Failed()) + len(r.GEO.Failed())
	if failed == 0 {
		md.Tip("Every check passed on both axes.")
	} else {
		md.Warningf("%d check(s) failed across both axes.", failed)
	}
	md.PlainText("")
}

func writeAxis(md *markdown.Markdown, title string, axis geolens.AxisScore) {
	md.H2(title)
	md.PlainText("")

	if len(axis.Results) == 0 {
		md.PlainText("No checks ran.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(axis.Results))
	for i, res := range axis.Results {
		status := "✅"
		if !res.Passed {
			status = "❌"
		}
		rows[i] = []string{
			status,
			"`" + res.RuleID + "`",
			cell(res.Message),
			cell(res.Evidence),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Rule", "Message", "Evidence"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeSimulation(md *markdown.Markdown, sim *geolens.Simulation) {
	if sim == nil {
		return
	}

	md.H2("AI Simulation")
	md.PlainText("")
	md.Blockquote(sim.Summary)
	md.PlainText("")

	if len(sim.DriftFlags) == 0 {
		md.Tip("The summary tracked the source; no drift detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(sim.DriftFlags))
	for i, flag := range sim.DriftFlags {
		rows[i] = []string{flag.Kind, cell(flag.Claim), cell(flag.Detail)}
	}

	md.Importantf("%d drift flag(s): the summary diverges from the source.", len(sim.DriftFlags))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Kind", "Claim", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

// cell makes a string safe for a Markdown table cell. Pipes would split
// the cell and newlines would break the row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}
