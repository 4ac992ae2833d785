package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jukebox",
		Short: "A simple command line tool to manage and play a local mp3 library",
		Long:  `A simple command line tool to keep a local library of mp3 tracks and play them.`,
	}

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createAddCommand())
	rootCmd.AddCommand(app.createListCommand())
	rootCmd.AddCommand(app.createDeleteCommand())
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createActivateCommand())
	rootCmd.AddCommand(app.createTUICommand())

	return rootCmd
}
