package screens

import (
	"fmt"

	"github.com/Gavin1937/pbd-epub-builder/pkg/app/components"
	"github.com/Gavin1937/pbd-epub-builder/pkg/app/styles"
	"github.com/Gavin1937/pbd-epub-builder/pkg/manifest"
	"github.com/Gavin1937/pbd-epub-builder/pkg/services"
	tea "github.com/charmbracelet/bubbletea"
)

// RootScreen is the single TUI screen: discovered manifests on top of
// the data directory, with a live pane for the running build.
type RootScreen struct {
	repo     services.Repository
	builder  *services.Builder
	dataDir  string
	list     *components.SeriesList
	progress *components.ProgressTracker

	building bool
	lastPath string
	err      error

	width  int
	height int
}

func NewRootScreen(repo services.Repository, builder *services.Builder, dataDir string) *RootScreen {
	return &RootScreen{
		repo:     repo,
		builder:  builder,
		dataDir:  dataDir,
		list:     components.NewSeriesList(),
		progress: components.NewProgressTracker(60),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(r.loadManifests, r.waitForProgress)
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.list.Width = msg.Width - 4
		r.list.Height = msg.Height - 10
		r.progress.SetWidth(msg.Width - 8)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return r, tea.Quit
		case "up", "k":
			r.list.Prev()
		case "down", "j":
			r.list.Next()
		case "r":
			return r, r.loadManifests
		case "enter":
			if r.building {
				break
			}
			selected := r.list.Selected()
			if selected != nil {
				r.building = true
				r.err = nil
				r.lastPath = ""
				r.progress.Clear()
				return r, r.startBuild(selected.Path)
			}
		}

	case manifestsLoadedMsg:
		r.list.SetItems(msg.items)
		r.err = msg.err

	case progressMsg:
		r.progress.Update(msg.progress)
		return r, r.waitForProgress

	case buildDoneMsg:
		r.building = false
		r.err = msg.err
		r.lastPath = msg.path
		return r, r.loadManifests
	}

	return r, nil
}

func (r *RootScreen) View() string {
	if r.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("📚 pbd-epub-builder")

	var errorMsg string
	if r.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", r.err)) + "\n\n"
	}

	var doneMsg string
	if r.lastPath != "" {
		doneMsg = styles.StatusCompleted.Render(fmt.Sprintf("📖 Wrote %s", r.lastPath)) + "\n\n"
	}

	var progressView string
	if r.building || r.progress.HasActive() {
		progressView = r.progress.View() + "\n"
	}

	listView := r.list.View()

	help := styles.HelpStyle.Render(
		"↑/k: up • ↓/j: down • enter: build EPUB • r: refresh • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s%s%s\n%s", header, errorMsg, doneMsg, progressView, listView, help)
}

// Messages
type manifestsLoadedMsg struct {
	items []components.SeriesListItem
	err   error
}

type progressMsg struct {
	progress services.BuildProgress
}

type buildDoneMsg struct {
	path string
	err  error
}

// Commands
func (r *RootScreen) loadManifests() tea.Msg {
	found, err := manifest.Discover(r.dataDir)
	if err != nil {
		return manifestsLoadedMsg{err: err}
	}

	items := make([]components.SeriesListItem, len(found))
	for i, d := range found {
		items[i] = components.SeriesListItem{Path: d.Path, Series: d.Series}
		if r.repo != nil {
			items[i].Built, _ = r.repo.GetBook(d.Series.ID)
		}
	}

	return manifestsLoadedMsg{items: items}
}

func (r *RootScreen) startBuild(manifestPath string) tea.Cmd {
	return func() tea.Msg {
		path, err := r.builder.BuildSeries(manifestPath)
		return buildDoneMsg{path: path, err: err}
	}
}

func (r *RootScreen) waitForProgress() tea.Msg {
	progress, ok := <-r.builder.GetProgressChannel()
	if !ok {
		return nil
	}
	return progressMsg{progress: progress}
}
