package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/wegive/internal/app"
	"github.com/Makepad-fr/wegive/internal/model"
	"github.com/Makepad-fr/wegive/internal/tui/asciimap"
)

// MapOptions is the initial viewport of the map section.
type MapOptions struct {
	Center model.Coordinate
	Zoom   int
}

// Run creates the map widget, hands it to ctl and blocks until the user quits.
func Run(ctx context.Context, ctl *app.Controller, opt MapOptions) error {
	w := asciimap.New(opt.Center, opt.Zoom)
	ctl.AttachMap(w)

	p := tea.NewProgram(New(ctx, ctl, w), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		return err
	}
	log.Info("ui closed")
	return nil
}
