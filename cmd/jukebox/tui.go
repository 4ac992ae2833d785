package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-jukebox/internal/tui"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface for managing and playing tracks.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			tuiApp := tui.NewApp(app.Store, app.Catalog)
			if err := tuiApp.Run(); err != nil {
				return fmt.Errorf("ошибка запуска интерфейса: %w", err)
			}
			return nil
		},
	}
}
