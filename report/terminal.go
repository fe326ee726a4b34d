package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/jayozer/SeoTagInspector/analyzer"
)

// Encode writes r in the given format: human, json or yaml
func Encode(w io.Writer, r *Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(r)
	case "human", "":
		WriteTerminal(w, r)
		return nil
	}
	return fmt.Errorf("unknown output format %q (expected human, json or yaml)", format)
}

func severityColor(s analyzer.Severity) *color.Color {
	switch s {
	case analyzer.SeverityGood:
		return color.New(color.FgGreen)
	case analyzer.SeverityWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func severityIcon(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityGood:
		return "✔"
	case analyzer.SeverityWarning:
		return "⚠"
	default:
		return "✖"
	}
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 90:
		return color.New(color.FgGreen, color.Bold)
	case score >= 70:
		return color.New(color.FgHiGreen, color.Bold)
	case score >= 50:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

// WriteTerminal prints a colored, human readable report
func WriteTerminal(w io.Writer, r *Report) {
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintf(w, "SEO REPORT: %s\n", r.URL)
	scoreColor(r.Score.Overall).Fprintf(w, "   Score: %d (%s, %s mode)\n", r.Score.Overall, r.Score.Label, r.Score.Mode)
	fmt.Fprintf(w, "   %s passed  %s warnings  %s failed\n\n",
		color.GreenString("%d", r.Score.Passed),
		color.YellowString("%d", r.Score.Warnings),
		color.RedString("%d", r.Score.Failed))

	white.Fprintln(w, "CATEGORIES:")
	for _, c := range r.Categories {
		scoreColor(c.Score.Score).Fprintf(w, "   %-15s %3d", c.Title, c.Score.Score)
		fmt.Fprintf(w, "   (%d passed, %d warnings, %d failed)\n", c.Score.Passed, c.Score.Warnings, c.Score.Failed)
	}
	if r.ImagesMismatch {
		color.New(color.FgYellow).Fprintln(w, "   ⚠ Image counts do not add up, content score may be off")
	}
	fmt.Fprintln(w)

	white.Fprintln(w, "GOOGLE PREVIEW:")
	fmt.Fprintf(w, "   %s\n   %s\n   %s\n\n", color.BlueString(r.Google.Title), color.GreenString(r.Google.URL), r.Google.Description)

	white.Fprintln(w, "CHECKS:")
	for _, c := range r.Checks {
		severityColor(c.Status).Fprintf(w, "   %s %s", severityIcon(c.Status), c.Title)
		fmt.Fprintf(w, "\n      %s\n", c.Message)
	}
	fmt.Fprintln(w)

	white.Fprintln(w, "HEADINGS:")
	for _, h := range r.Headings {
		fmt.Fprintf(w, "   %s (%d)", h.Level, h.Count)
		if h.Count > 0 {
			fmt.Fprintf(w, ": %s", strings.Join(h.Items, " | "))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	writeTags(w, white, "OPEN GRAPH:", r.OGTags)
	writeTags(w, white, "TWITTER CARD:", r.TwitterTags)

	if len(r.Recommendations) > 0 {
		white.Fprintln(w, "RECOMMENDATIONS:")
		for i, rec := range r.Recommendations {
			text := rec.Text
			if rec.Title != "" {
				text = rec.Title + ": " + rec.Text
			}
			fmt.Fprintf(w, "   %d. ", i+1)
			severityColor(rec.Severity).Fprint(w, severityIcon(rec.Severity))
			fmt.Fprintf(w, " %s\n", text)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func writeTags(w io.Writer, heading *color.Color, title string, rows []TagRow) {
	heading.Fprintln(w, title)
	if len(rows) == 0 {
		fmt.Fprintln(w, "   none found")
	}
	for _, row := range rows {
		severityColor(row.Status).Fprintf(w, "   %s %-20s", severityIcon(row.Status), row.Name)
		fmt.Fprintf(w, " %s\n", row.Content)
	}
	fmt.Fprintln(w)
}
