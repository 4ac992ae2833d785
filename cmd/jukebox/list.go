package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-jukebox/internal/entitlement"
	"github.com/hazadus/go-jukebox/internal/metadata"
	"github.com/hazadus/go-jukebox/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tracks from the library",
		Long:  `Display a list of all tracks stored in the local library.`,
		Run: func(_ *cobra.Command, _ []string) {
			app.listTracks()
		},
	}
}

func (app *Application) listTracks() {
	tracks := app.Catalog.Tracks()

	if len(tracks) == 0 {
		fmt.Println("📚 Библиотека пуста. Добавьте треки с помощью команды 'add'.")
		return
	}

	fmt.Printf("📚 Найдено треков: %d\n\n", len(tracks))

	// Выводим заголовок таблицы
	fmt.Printf("%-4s %-50s %-12s %-10s %-12s\n",
		"ID", "Название", "Длительность", "Размер", "Добавлен")
	fmt.Println(strings.Repeat("-", 92))

	extractor := metadata.NewExtractor()

	// Выводим каждый трек
	for _, track := range tracks {
		// Длительность определяется декодированием данных трека
		duration := "N/A"
		if d, err := extractor.Duration(track.Payload); err == nil {
			duration = utils.FormatTime(d)
		}

		name := utils.TruncateString(utils.DisplayName(track.Name), 48)
		fileSize := utils.FormatFileSize(int64(len(track.Payload)))
		added := track.CreatedAt.Format("02.01.2006")

		fmt.Printf("%-4d %-50s %-12s %-10s %-12s\n",
			track.ID, name, duration, fileSize, added)
	}

	fmt.Println()
	if app.Gate.IsPro() {
		fmt.Println("⭐ Pro-режим: лимит треков снят")
	} else {
		fmt.Printf("📗 Бесплатный тариф: %d из %d треков\n", len(tracks), entitlement.FreeLimit)
	}
	fmt.Println("💡 Используйте 'jukebox play [ID]' для воспроизведения трека")
}
