package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/quotes-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

var (
	textStyle    = lipgloss.NewStyle().Italic(true)
	authorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")).Padding(0, 1)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

func renderQuote(w io.Writer, q *domain.Quote) {
	fmt.Fprintln(w, textStyle.Render(fmt.Sprintf("%q", q.Text)))
	fmt.Fprintln(w, "  - "+authorStyle.Render(q.Author))

	meta := []string{badgeStyle.Render(string(q.Category))}
	for _, tag := range q.Tags {
		meta = append(meta, tagStyle.Render("#"+tag))
	}

	fmt.Fprintln(w, "  "+strings.Join(meta, " "))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  id %s, added %s", q.ID, q.CreatedAt.Format(time.DateTime))))
}

func renderPage(w io.Writer, page *domain.QuotePage) {
	if len(page.Quotes) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No quotes found"))
		return
	}

	for _, q := range page.Quotes {
		renderQuote(w, q)
		fmt.Fprintln(w)
	}

	p := page.Pagination
	footer := fmt.Sprintf("Page %d of %d (%d quotes)", p.Page, p.TotalPages, p.TotalItems)

	switch {
	case p.HasPrev && p.HasNext:
		footer += fmt.Sprintf(", --page %d or %d", p.Page-1, p.Page+1)
	case p.HasNext:
		footer += fmt.Sprintf(", next: --page %d", p.Page+1)
	case p.HasPrev:
		footer += fmt.Sprintf(", previous: --page %d", p.Page-1)
	}

	fmt.Fprintln(w, mutedStyle.Render(footer))
}

func renderCategories(w io.Writer, counts []domain.CategoryCount) {
	if len(counts) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No categories available"))
		return
	}

	width := 0
	for _, c := range counts {
		width = max(width, len(c.Category))
	}

	row := lipgloss.NewStyle().Width(width + 2)

	fmt.Fprintln(w, headerStyle.Render("Categories"))

	for _, c := range counts {
		fmt.Fprintln(w, row.Render(string(c.Category))+fmt.Sprintf("%d", c.Count))
	}
}

func renderHealth(w io.Writer, report *acl.RemoteHealth) {
	fmt.Fprintln(w, headerStyle.Render("quotes API")+" "+statusStyle(report.Status).Render(string(report.Status)))
	fmt.Fprintln(w, mutedStyle.Render("uptime "+report.Uptime.Round(time.Second).String()))

	names := make([]string, 0, len(report.Checks))
	for name := range report.Checks {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		check := report.Checks[name]
		if check == nil {
			continue
		}

		line := fmt.Sprintf("  %s %s", name, statusStyle(check.Status).Render(string(check.Status)))
		if check.Message != "" {
			line += mutedStyle.Render(" " + check.Message)
		}

		fmt.Fprintln(w, line)
	}
}

func statusStyle(s ports.HealthStatus) lipgloss.Style {
	if s == ports.HealthStatusHealthy {
		return successStyle
	}

	return errorStyle
}
