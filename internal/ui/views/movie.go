package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"moviecompare/internal/compare"
	"moviecompare/internal/domain"
)

// MovieOptionRenderer renders search results
type MovieOptionRenderer struct {
	styles *Styles
}

// NewMovieOptionRenderer creates a new option renderer
func NewMovieOptionRenderer(styles *Styles) *MovieOptionRenderer {
	return &MovieOptionRenderer{styles: styles}
}

// Render returns the one-line dropdown entry of a search result
func (r *MovieOptionRenderer) Render(m domain.Movie) string {
	poster := "  "
	if m.HasPoster() {
		poster = "▣ "
	}
	return r.styles.Dim.Render(poster) + fmt.Sprintf("%s (%s)", m.Title, m.Year)
}

// MovieTitle is the text written into the search box for a result
func MovieTitle(m domain.Movie) string {
	return m.Title
}

// SummaryRenderer renders the detail panel of one side
type SummaryRenderer struct {
	styles *Styles
}

// NewSummaryRenderer creates a new summary renderer
func NewSummaryRenderer(styles *Styles) *SummaryRenderer {
	return &SummaryRenderer{styles: styles}
}

// Render draws the summary of side s. Stats listed as lost in outcomes are
// drawn with the warning style.
func (r *SummaryRenderer) Render(s compare.Summary, side domain.Side, outcomes []compare.Outcome, width int) string {
	text := lipgloss.NewStyle()
	if width > 0 {
		text = text.Width(width)
	}

	rows := []string{
		text.Inherit(r.styles.MovieTitle).Render(s.Detail.Title),
		text.Inherit(r.styles.Genre).Render(s.Detail.Genre),
		text.Inherit(r.styles.Plot).Render(s.Detail.Plot),
	}

	statWidth := width - 2
	for i, st := range s.Stats {
		box := r.styles.StatPrimary
		if i < len(outcomes) && outcomes[i].Loser() == side {
			box = r.styles.StatWarning
		}
		if statWidth > 0 {
			box = box.Width(statWidth)
		}
		content := lipgloss.JoinVertical(lipgloss.Left,
			r.styles.StatValue.Render(st.Display),
			r.styles.StatLabel.Render(st.Label),
		)
		rows = append(rows, box.Render(content))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderText renders the full record as plain text for the pager
func RenderText(s compare.Summary) string {
	d := s.Detail
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n\n", d.Title, d.Year)
	fields := []struct{ name, value string }{
		{"Rated", d.Rated},
		{"Released", d.Released},
		{"Runtime", d.Runtime},
		{"Genre", d.Genre},
		{"Director", d.Director},
		{"Actors", d.Actors},
		{"IMDb", d.IMDbID},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(&b, "%-10s %s\n", f.name+":", f.value)
	}

	if d.Plot != "" {
		fmt.Fprintf(&b, "\n%s\n", d.Plot)
	}

	b.WriteString("\n")
	for _, st := range s.Stats {
		fmt.Fprintf(&b, "%-12s %s\n", st.Label+":", st.Display)
	}
	return b.String()
}
