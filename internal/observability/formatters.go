// Package observability provides the CLI logger and the formatted output
// printed in verbose mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jonathan/gencv/internal/content"
	"github.com/jonathan/gencv/internal/ranking"
	"github.com/jonathan/gencv/internal/rendering"
	"github.com/jonathan/gencv/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out   io.Writer
	title func(a ...any) string
	good  func(a ...any) string
	dim   func(a ...any) string
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:   out,
		title: color.New(color.FgCyan, color.Bold).SprintFunc(),
		good:  color.New(color.FgGreen, color.Bold).SprintFunc(),
		dim:   color.New(color.Faint).SprintFunc(),
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s%s │\n", p.title(title), strings.Repeat(" ", max(0, boxWidth-4-len([]rune(title)))))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", boxWidth-4-len([]rune(line))))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintQuery outputs the search query and, when known, the extracted keywords.
func (p *Printer) PrintQuery(query string, keywords []string) {
	if query == "" {
		return
	}

	var sb strings.Builder
	sb.WriteString(wrap(query, boxWidth-4))
	if len(keywords) > 0 {
		sb.WriteString("\n\nKeywords:\n")
		sb.WriteString(wrap(strings.Join(keywords, ", "), boxWidth-6))
	}

	p.printBox("SEARCH QUERY", sb.String())
}

// PrintReview outputs a bullet followed by the model's critique of it.
func (p *Printer) PrintReview(bullet, review string) {
	p.printBox("BULLET REVIEW", wrap(bullet, boxWidth-4)+"\n\n"+review)
}

// PrintSlots outputs the slots of a compiled template in body order.
func (p *Printer) PrintSlots(name string, slots []rendering.Slot) {
	var sb strings.Builder
	if len(slots) == 0 {
		sb.WriteString("(no slots)")
	}
	for i, slot := range slots {
		sb.WriteString(fmt.Sprintf("%-20s quota %-3d tokens %d-%d", slot.Category, slot.Quota, slot.Start, slot.End))
		if i < len(slots)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TEMPLATE SLOTS: "+name, sb.String())
}

// PrintExperiences outputs every experience of a content model in
// declaration order.
func (p *Printer) PrintExperiences(model *content.Model) {
	var sb strings.Builder
	if len(model.Experiences) == 0 {
		sb.WriteString("(no experiences)")
	}
	for i, exp := range model.Experiences {
		sb.WriteString(fmt.Sprintf("%-20s %-12s %3d bullets  %s", exp.Key, exp.Category, len(exp.Bullets), exp.MetaText[0]))
		if i < len(model.Experiences)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EXPERIENCES", sb.String())
}

// PrintRankedExperiences outputs experiences ranked against a query.
func (p *Printer) PrintRankedExperiences(ranked []ranking.RankedExperience) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range ranked {
		sb.WriteString(fmt.Sprintf("#%-3d %.3f  %-12s %s", i+1, r.Similarity, r.Category, r.Key))
		if i < len(ranked)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RANKED EXPERIENCES", sb.String())
}

// PrintPlan outputs the bullets chosen for each experience.
func (p *Printer) PrintPlan(plan *types.ResumePlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Lines used: %d / %d\n", plan.TotalLines, plan.SpaceBudget.MaxLines))

	for _, exp := range plan.SelectedExperiences {
		sb.WriteString(fmt.Sprintf("\n%s [%s] %.3f\n", exp.ExperienceID, exp.Category, exp.Similarity))
		count := min(len(exp.Bullets), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %.2f %s\n", exp.Similarities[i], exp.Bullets[i]))
		}
		if len(exp.Bullets) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(exp.Bullets)-maxItemsToShow))
		}
	}

	p.printBox("SELECTED BULLETS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuccess outputs a one-line success message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSuccess(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.good("✓"), fmt.Sprintf(format, args...))
}

// PrintNote outputs a dimmed one-line message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintNote(format string, args ...any) {
	fmt.Fprintln(p.out, p.dim(fmt.Sprintf(format, args...)))
}

// wrap breaks text on spaces so no line exceeds width runes where possible.
func wrap(text string, width int) string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
