package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazadus/go-jukebox/internal/catalog"
	"github.com/hazadus/go-jukebox/internal/config"
	"github.com/hazadus/go-jukebox/internal/entitlement"
	"github.com/hazadus/go-jukebox/internal/store"
)

const defaultConfigPath = "~/.jukebox/config.yaml"

// Application хранит зависимости, общие для всех команд
type Application struct {
	Config  *config.Config
	Store   *store.Store
	Catalog *catalog.Catalog
	Gate    *entitlement.Gate
}

func main() {
	// Создаем контекст, отменяемый по сигналам прерывания
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Загружаем конфигурацию
	cfg, err := config.LoadConfig(defaultConfigPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Открываем хранилище библиотеки
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Ошибка открытия библиотеки: %v", err)
	}
	defer st.Close()

	// Наполняем каталог из хранилища
	cat := catalog.New()
	if err := cat.Refresh(st); err != nil {
		log.Fatalf("Ошибка чтения библиотеки: %v", err)
	}

	gate, err := entitlement.NewGate(st)
	if err != nil {
		log.Fatalf("Ошибка чтения тарифа: %v", err)
	}

	// Разовая активация pro-режима кодом из окружения
	if activated, err := gate.ActivateFromEnv(); err != nil {
		fmt.Printf("⚠️  Не удалось активировать pro-режим: %v\n", err)
	} else if activated {
		fmt.Println("🎉 Pro-режим активирован! Лимит треков снят.")
	}

	app := &Application{
		Config:  cfg,
		Store:   st,
		Catalog: cat,
		Gate:    gate,
	}

	rootCmd := app.createRootCommand(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
