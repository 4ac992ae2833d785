package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-jukebox/internal/entitlement"
	"github.com/hazadus/go-jukebox/internal/importer"
)

// createAddCommand создает команду add с привязкой к экземпляру приложения
func (app *Application) createAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add [file path...]",
		Short: "Add mp3 files to the library",
		Long:  `Add one or more mp3 files to the local library.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.addTracks(args)
		},
	}
}

// addTracks сохраняет указанные файлы в библиотеку
func (app *Application) addTracks(paths []string) error {
	service := importer.NewService(app.Store, app.Catalog, app.Gate)

	result, err := service.ImportFiles(paths)
	if errors.Is(err, importer.ErrLimitReached) {
		fmt.Printf("❌ Лимит в %d бесплатных треков исчерпан.\n", entitlement.FreeLimit)
		fmt.Println("💡 Активируйте pro-режим командой 'jukebox activate [код]'.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("ошибка импорта: %w", err)
	}

	fmt.Printf("✅ Сохранено треков: %d", result.Added)
	if result.Skipped > 0 {
		fmt.Printf(" (пропущено: %d)", result.Skipped)
	}
	fmt.Println()
	return nil
}
