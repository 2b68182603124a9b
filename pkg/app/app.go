package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/guya/pkg/app/screens"
	"github.com/kerbaras/guya/pkg/services"
)

type App struct {
	controller *services.Controller
}

func NewApp(controller *services.Controller) *App {
	return &App{controller: controller}
}

// Run blocks until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	model := screens.NewRootScreen(ctx, a.controller)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
