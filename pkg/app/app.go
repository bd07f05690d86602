package app

import (
	"github.com/Gavin1937/pbd-epub-builder/pkg/app/screens"
	"github.com/Gavin1937/pbd-epub-builder/pkg/services"
	tea "github.com/charmbracelet/bubbletea"
)

type App struct {
	repo    services.Repository
	builder *services.Builder
	dataDir string
}

func NewApp(repo services.Repository, builder *services.Builder, dataDir string) *App {
	return &App{repo: repo, builder: builder, dataDir: dataDir}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.repo, a.builder, a.dataDir)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
