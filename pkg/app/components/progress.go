package components

import (
	"fmt"
	"strings"

	"github.com/Gavin1937/pbd-epub-builder/pkg/app/styles"
	"github.com/Gavin1937/pbd-epub-builder/pkg/services"
)

// ProgressTracker renders the state of the running build.
type ProgressTracker struct {
	current *services.BuildProgress
	width   int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{width: width}
}

func (p *ProgressTracker) SetWidth(width int) {
	p.width = width
}

func (p *ProgressTracker) Update(progress services.BuildProgress) {
	prog := progress // Copy
	p.current = &prog
}

func (p *ProgressTracker) Clear() {
	p.current = nil
}

func (p *ProgressTracker) HasActive() bool {
	return p.current != nil && p.current.Status != "complete"
}

func (p *ProgressTracker) View() string {
	if p.current == nil {
		return ""
	}
	progress := p.current

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Building " + progress.SeriesTitle))
	b.WriteString("\n\n")

	novelText := progress.NovelTitle
	if novelText == "" {
		novelText = "Packaging book"
	}
	b.WriteString(styles.TextStyle.Render(novelText))
	b.WriteString("\n")

	statusText := progress.Status
	if progress.TotalNovels > 0 {
		percentage := float64(progress.CurrentNovel) / float64(progress.TotalNovels) * 100
		statusText = fmt.Sprintf("%s (%d/%d novels - %.0f%%)",
			progress.Status, progress.CurrentNovel, progress.TotalNovels, percentage)

		bar := renderProgressBar(progress.CurrentNovel, progress.TotalNovels, p.width-4)
		b.WriteString(bar)
		b.WriteString("\n")
	}

	statusStyle := styles.StatusStyle(progress.Status)
	b.WriteString(statusStyle.Render(statusText))
	b.WriteString("\n")

	if progress.Error != nil {
		errMsg := styles.StatusError.Render(fmt.Sprintf("Error: %s", progress.Error))
		b.WriteString(errMsg)
		b.WriteString("\n")
	}

	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	bar := styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
	return bar
}
