// Package presenter renders the repository list and dispatches the two
// per-row actions (open, share) to whoever is listening.
package presenter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/naka-gawa/github-repos/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format selects how a list is written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts the names of the supported formats, case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unsupported format %q: use table, json or yaml", s)
}

const maxDescriptionWidth = 60

// List holds the currently rendered rows. Every Render replaces them.
type List struct {
	out     io.Writer
	format  Format
	summary bool
	items   []domain.Repository

	// OnItemActivated is called when a row is opened.
	OnItemActivated func(domain.Repository)
	// OnShareActivated is called when a row's share action is used.
	OnShareActivated func(domain.Repository)
}

func NewList(out io.Writer, format Format, summary bool) *List {
	return &List{out: out, format: format, summary: summary}
}

// Render replaces the rendered rows with repos and writes them.
func (l *List) Render(repos []domain.Repository) error {
	l.items = make([]domain.Repository, len(repos))
	copy(l.items, repos)
	switch l.format {
	case FormatJSON:
		return l.renderJSON()
	case FormatYAML:
		return l.renderYAML()
	default:
		return l.renderTable()
	}
}

// Items returns a copy of the rendered rows.
func (l *List) Items() []domain.Repository {
	return append([]domain.Repository(nil), l.items...)
}

// Activate dispatches OnItemActivated for the 1-based row n.
func (l *List) Activate(n int) error {
	repo, err := l.row(n)
	if err != nil {
		return err
	}
	if l.OnItemActivated != nil {
		l.OnItemActivated(repo)
	}
	return nil
}

// Share dispatches OnShareActivated for the 1-based row n.
func (l *List) Share(n int) error {
	repo, err := l.row(n)
	if err != nil {
		return err
	}
	if l.OnShareActivated != nil {
		l.OnShareActivated(repo)
	}
	return nil
}

func (l *List) row(n int) (domain.Repository, error) {
	if n < 1 || n > len(l.items) {
		return domain.Repository{}, fmt.Errorf("no repository at row %d: %d rows shown", n, len(l.items))
	}
	return l.items[n-1], nil
}

func (l *List) renderTable() error {
	if len(l.items) == 0 {
		_, err := fmt.Fprintln(l.out, "No repositories.")
		return err
	}
	tw := tabwriter.NewWriter(l.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSTARS\tLANGUAGE\tURL\tDESCRIPTION")
	for i, repo := range l.items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n",
			i+1, repo.Name, repo.Stars, orDash(repo.Language), repo.HTMLURL, truncate(repo.Description, maxDescriptionWidth))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !l.summary {
		return nil
	}
	s, err := Summarize(l.items)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(l.out, "\n%d repositories, %d stars (mean %.1f, median %.1f)\n",
		s.Count, s.TotalStars, s.MeanStars, s.MedianStars)
	return err
}

func (l *List) renderJSON() error {
	jsonData, err := json.MarshalIndent(l.items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal repositories to JSON: %w", err)
	}
	_, err = fmt.Fprintln(l.out, string(jsonData))
	return err
}

func (l *List) renderYAML() error {
	enc := yaml.NewEncoder(l.out)
	enc.SetIndent(2)
	if err := enc.Encode(l.items); err != nil {
		return fmt.Errorf("failed to marshal repositories to YAML: %w", err)
	}
	return enc.Close()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
