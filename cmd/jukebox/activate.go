package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createActivateCommand создает команду activate с привязкой к экземпляру приложения
func (app *Application) createActivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activate [code]",
		Short: "Activate pro mode with an activation code",
		Long:  `Activate pro mode to remove the free tier track limit.`,
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			app.activate(args[0])
		},
	}
}

func (app *Application) activate(code string) {
	if app.Gate.IsPro() {
		fmt.Println("⭐ Pro-режим уже активирован")
		return
	}

	ok, err := app.Gate.TryActivate(code)
	if err != nil {
		fmt.Printf("❌ Ошибка активации: %v\n", err)
		return
	}
	if !ok {
		fmt.Println("❌ Неверный код активации")
		return
	}
	fmt.Println("🎉 Pro-режим активирован! Лимит треков снят.")
}
