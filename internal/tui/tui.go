// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hazadus/go-jukebox/internal/catalog"
	"github.com/hazadus/go-jukebox/internal/controller"
	"github.com/hazadus/go-jukebox/internal/player"
	"github.com/hazadus/go-jukebox/internal/store"
	"github.com/hazadus/go-jukebox/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	store   *store.Store
	catalog *catalog.Catalog
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(st *store.Store, cat *catalog.Catalog) *App {
	return &App{
		store:   st,
		catalog: cat,
	}
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	// Единственный аудиовыход на все время работы интерфейса
	audio := player.NewPlayer()
	ctrl := controller.New(tuiApp.catalog, audio)

	// Создаем модель для Bubble Tea
	model := app.NewMainModel(tuiApp.store, tuiApp.catalog, ctrl, audio)

	// Создаем программу Bubble Tea
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Запускаем программу
	_, err := p.Run()

	// Останавливаем воспроизведение и закрываем плеер после завершения
	model.Close()

	return err
}
