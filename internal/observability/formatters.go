// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPortfolio outputs a human-readable summary of an extracted portfolio.
func (p *Printer) PrintPortfolio(portfolio *types.PortfolioData) {
	if portfolio == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", portfolio.PersonalInfo.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", portfolio.PersonalInfo.Title))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", portfolio.PersonalInfo.Email))
	sb.WriteString(fmt.Sprintf("Location: %s\n", portfolio.PersonalInfo.Location))
	sb.WriteString("\n")

	if len(portfolio.SocialLinks) > 0 {
		sb.WriteString("Links:\n")
		count := min(len(portfolio.SocialLinks), maxItemsToShow)
		for i := 0; i < count; i++ {
			link := portfolio.SocialLinks[i]
			if link.URL == "" {
				continue
			}
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", link.Platform, link.URL))
		}
		sb.WriteString("\n")
	}

	if len(portfolio.WorkExperience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(portfolio.WorkExperience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := portfolio.WorkExperience[i]
			if exp.Company == "" && exp.Position == "" {
				continue
			}
			sb.WriteString(fmt.Sprintf("  • %s, %s (%s – %s)\n", exp.Position, exp.Company, exp.StartDate, exp.EndDate))
		}
		if len(portfolio.WorkExperience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(portfolio.WorkExperience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Skills:         %s\n", summarizeSkills(portfolio.Skills)))
	sb.WriteString(fmt.Sprintf("Projects:       %d\n", countNonEmptyProjects(portfolio.Projects)))
	sb.WriteString(fmt.Sprintf("Education:      %d\n", len(portfolio.Education)))
	sb.WriteString(fmt.Sprintf("Certifications: %d\n", len(portfolio.Certifications)))

	p.printBox("Extracted Portfolio", strings.TrimRight(sb.String(), "\n"))
}

func summarizeSkills(skills types.SkillSet) string {
	if skills.Shape() == types.SkillShapeCategorized {
		total := 0
		for _, items := range skills.Categories {
			total += len(items)
		}
		return fmt.Sprintf("%d in %d categories", total, len(skills.Categories))
	}

	count := 0
	for _, s := range skills.Flat {
		if s != "" {
			count++
		}
	}
	return fmt.Sprintf("%d", count)
}

func countNonEmptyProjects(projects []types.Project) int {
	count := 0
	for _, p := range projects {
		if p.Name != "" || p.Description != "" {
			count++
		}
	}
	return count
}
