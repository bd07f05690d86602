package components

import (
	"fmt"
	"strings"

	"github.com/Gavin1937/pbd-epub-builder/pkg/app/styles"
	"github.com/Gavin1937/pbd-epub-builder/pkg/data"
	"github.com/charmbracelet/lipgloss"
)

// SeriesListItem is one discovered manifest plus its library state.
type SeriesListItem struct {
	Path   string
	Series *data.Series
	Built  *data.Book // nil when the series was never built
}

type SeriesList struct {
	Items         []SeriesListItem
	SelectedIndex int
	Width         int
	Height        int
}

func NewSeriesList() *SeriesList {
	return &SeriesList{
		Items:         []SeriesListItem{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (l *SeriesList) SetItems(items []SeriesListItem) {
	l.Items = items
	if l.SelectedIndex >= len(items) && len(items) > 0 {
		l.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		l.SelectedIndex = 0
	}
}

func (l *SeriesList) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex++
	if l.SelectedIndex >= len(l.Items) {
		l.SelectedIndex = 0
	}
}

func (l *SeriesList) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.Items) - 1
	}
}

func (l *SeriesList) Selected() *SeriesListItem {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return &l.Items[l.SelectedIndex]
}

func (l *SeriesList) View() string {
	if len(l.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No series manifests found in data directory")
		return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder

	for i, item := range l.Items {
		cardStyle := styles.CardStyle
		if i == l.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TitleStyle.Render(item.Series.Title)
		author := styles.SubtitleStyle.Render("by " + item.Series.Author)

		novelInfo := styles.MutedStyle.Render(
			fmt.Sprintf("Novels: %d", len(item.Series.Novels)),
		)
		source := styles.MutedStyle.Render(fmt.Sprintf("Manifest: %s", item.Path))

		builtText := "Not built"
		builtStyle := styles.MutedStyle
		if item.Built != nil {
			builtText = fmt.Sprintf("Built %s", item.Built.BuiltAt.Format("2006-01-02 15:04"))
			builtStyle = styles.StatusCompleted
		}
		built := builtStyle.Render(builtText)

		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			author,
			"",
			novelInfo,
			built,
			source,
		)

		card := cardStyle.Width(l.Width - 4).Render(cardContent)
		b.WriteString(card)
		b.WriteString("\n")
	}

	return b.String()
}
