package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/pomo/internal/history"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatCompact OutputFormat = "compact"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatDefault, nil
	case FormatDefault, FormatTable, FormatJSON, FormatCSV, FormatCompact:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want default, table, json, csv or compact)", s)
	}
}

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format OutputFormat
	Width  int
	Color  bool
	Header history.Header
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 80
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}

	return &RenderConfig{
		Format: FormatDefault,
		Width:  width,
		Color:  true,
		Header: history.HeaderEnglish,
	}
}

// HistoryList is one page of history plus the totals across every page.
type HistoryList struct {
	Entries    []history.Entry `json:"entries"`
	Total      int             `json:"total"`
	Page       int             `json:"page,omitempty"`
	PerPage    int             `json:"per_page,omitempty"`
	TotalPages int             `json:"total_pages,omitempty"`
	Since      string          `json:"since,omitempty"`
	Totals     history.Entry   `json:"totals"`
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	Date      lipgloss.Style
	Work      lipgloss.Style
	Break     lipgloss.Style
	Cycles    lipgloss.Style
}

// NewRenderer creates a new renderer with the given config
func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	return &Renderer{
		config: config,
		styles: initStyles(config.Color),
	}
}

func initStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title:     plain.Bold(true),
			Separator: plain,
			Meta:      plain,
			Date:      plain,
			Work:      plain,
			Break:     plain,
			Cycles:    plain,
		}
	}
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Meta:      lipgloss.NewStyle().Faint(true),
		Date:      lipgloss.NewStyle().Bold(true),
		Work:      lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Break:     lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")),
		Cycles:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
	}
}

// RenderHistory renders a list of entries according to the configured format
func (r *Renderer) RenderHistory(list *HistoryList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(list)
	case FormatCSV:
		return history.ExportCSV(list.Entries, r.config.Header)
	case FormatTable:
		return r.renderTable(list), nil
	case FormatCompact:
		return r.renderCompact(list), nil
	default:
		return r.renderDefault(list), nil
	}
}

func (r *Renderer) rule() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 80)))
}

func (r *Renderer) renderDefault(list *HistoryList) string {
	var builder strings.Builder

	builder.WriteString(r.styles.Title.Render("Pomodoro History"))
	if list.Since != "" {
		builder.WriteString("  ")
		builder.WriteString(r.styles.Separator.Render("since "))
		builder.WriteString(r.styles.Meta.Render(list.Since))
	}
	builder.WriteString("\n")
	builder.WriteString(r.rule())
	builder.WriteString("\n")

	if len(list.Entries) == 0 {
		builder.WriteString(r.styles.Meta.Render("No completed phases yet."))
		builder.WriteString("\n")
		return builder.String()
	}

	for _, e := range list.Entries {
		builder.WriteString(r.styles.Date.Render(e.Date))
		builder.WriteString("  ")
		builder.WriteString(r.styles.Work.Render(fmt.Sprintf("work %dm", e.WorkMinutes())))
		builder.WriteString("  ")
		builder.WriteString(r.styles.Break.Render(fmt.Sprintf("break %dm", e.BreakMinutes())))
		builder.WriteString("  ")
		builder.WriteString(r.styles.Cycles.Render(fmt.Sprintf("%d %s", e.Cycles, pluralize(e.Cycles, "cycle"))))
		builder.WriteString("\n")
	}

	builder.WriteString(r.rule())
	builder.WriteString("\n")
	t := list.Totals
	builder.WriteString(r.styles.Meta.Render(fmt.Sprintf("Total: work %dm | break %dm | %d %s",
		t.WorkMinutes(), t.BreakMinutes(), t.Cycles, pluralize(t.Cycles, "cycle"))))
	builder.WriteString("\n")

	if list.TotalPages > 1 {
		pagination := NewPagination(list.Total, list.PerPage, list.Page)
		builder.WriteString(r.styles.Meta.Render(pagination.FormatSummary()))
		builder.WriteString("\n")
		if nav := pagination.FormatNavigation(); nav != "" {
			builder.WriteString(r.styles.Meta.Render(nav))
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

func (r *Renderer) renderJSON(list *HistoryList) (string, error) {
	if list.Entries == nil {
		list.Entries = []history.Entry{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// renderTable renders entries in a tab separated table
func (r *Renderer) renderTable(list *HistoryList) string {
	var builder strings.Builder

	builder.WriteString(strings.Join(r.config.Header[:], "\t"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", min(r.config.Width, 60)))
	builder.WriteString("\n")

	for _, e := range list.Entries {
		row := []string{
			e.Date,
			strconv.Itoa(e.WorkMinutes()),
			strconv.Itoa(e.BreakMinutes()),
			strconv.Itoa(e.Cycles),
		}
		builder.WriteString(strings.Join(row, "\t"))
		builder.WriteString("\n")
	}
	return builder.String()
}

func (r *Renderer) renderCompact(list *HistoryList) string {
	var builder strings.Builder
	for _, e := range list.Entries {
		builder.WriteString(fmt.Sprintf("%s %dm/%dm x%d\n", e.Date, e.WorkMinutes(), e.BreakMinutes(), e.Cycles))
	}
	return builder.String()
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
