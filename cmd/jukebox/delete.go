package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-jukebox/internal/utils"
)

// createDeleteCommand создает команду delete с привязкой к экземпляру приложения
func (app *Application) createDeleteCommand() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a track by ID",
		Long:  `Delete a track from the local library by its ID.`,
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fmt.Printf("❌ Ошибка: неверный ID '%s'. ID должен быть числом.\n", args[0])
				return
			}
			app.deleteTrack(id, skipConfirm)
		},
	}
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "удалить без подтверждения")

	return cmd
}

func (app *Application) deleteTrack(id int64, skipConfirm bool) {
	index := app.Catalog.IndexOf(id)
	if index < 0 {
		fmt.Printf("❌ Трек с ID %d не найден\n", id)
		return
	}
	track, _ := app.Catalog.ByIndex(index)
	name := utils.DisplayName(track.Name)

	if !skipConfirm {
		fmt.Printf("Удалить трек «%s»? [y/N]: ", name)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("🚫 Удаление отменено")
			return
		}
	}

	if err := app.Store.DeleteByID(id); err != nil {
		fmt.Printf("❌ Ошибка удаления трека: %v\n", err)
		return
	}

	// Каталог обновляется сразу после изменения хранилища
	if err := app.Catalog.Refresh(app.Store); err != nil {
		fmt.Printf("❌ Ошибка обновления каталога: %v\n", err)
		return
	}

	fmt.Printf("✅ Трек «%s» удалён из библиотеки\n", name)
}
