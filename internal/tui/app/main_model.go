// Package app содержит основную логику TUI приложения
package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hazadus/go-jukebox/internal/catalog"
	"github.com/hazadus/go-jukebox/internal/controller"
	"github.com/hazadus/go-jukebox/internal/player"
	"github.com/hazadus/go-jukebox/internal/store"
	tuiPlayer "github.com/hazadus/go-jukebox/internal/tui/player"
	"github.com/hazadus/go-jukebox/internal/tui/playlist"
)

// Время показа всплывающего уведомления
const noticeLifetime = 3 * time.Second

var noticeStyle = lipgloss.NewStyle().
	PaddingLeft(2).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("63"))

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// PlaylistScreen - экран списка треков
	PlaylistScreen ScreenType = iota
	// PlayerScreen - экран плеера
	PlayerScreen
)

// progressTickMsg несет очередное обновление позиции от аудиовыхода
type progressTickMsg struct {
	status player.Status
}

// playbackDoneMsg отправляется при естественном завершении трека
type playbackDoneMsg struct{}

// noticeMsg несет текст всплывающего уведомления
type noticeMsg struct {
	text string
}

// noticeExpiredMsg гасит уведомление с указанным порядковым номером
type noticeExpiredMsg struct {
	seq int
}

// MainModel представляет главную модель TUI
type MainModel struct {
	store      *store.Store
	catalog    *catalog.Catalog
	controller *controller.Controller
	audio      *player.Player

	currentScreen ScreenType
	playlistModel *playlist.Model
	playerModel   *tuiPlayer.Model

	// Всплывающее уведомление и его порядковый номер: номер защищает
	// свежее уведомление от таймера погасшего
	notice    string
	noticeSeq int

	windowSize *tea.WindowSizeMsg
}

// NewMainModel создает новую главную модель
func NewMainModel(st *store.Store, cat *catalog.Catalog, ctrl *controller.Controller, audio *player.Player) *MainModel {
	return &MainModel{
		store:         st,
		catalog:       cat,
		controller:    ctrl,
		audio:         audio,
		currentScreen: PlaylistScreen,
		playlistModel: playlist.NewModel(ctrl),
		playerModel:   nil, // Будет создана при выборе трека
	}
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(
		m.playlistModel.Init(),
		m.listenForProgress(),
		m.listenForDone(),
		m.listenForNotices(),
	)
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Глобальные горячие клавиши
		if msg.String() == "ctrl+c" {
			m.controller.Stop()
			return m, tea.Quit
		}

	case playlist.TrackSelectedMsg:
		// Загружаем выбранный трек и переключаемся на экран плеера
		m.controller.LoadTrack(msg.Index)
		m.playlistModel.RefreshData()
		return m, m.openPlayerScreen()

	case playlist.OpenPlayerMsg:
		return m, m.openPlayerScreen()

	case playlist.DeleteConfirmedMsg:
		return m, m.deleteTrack(msg)

	case tuiPlayer.GoBackMsg:
		// Возвращаемся к списку треков
		m.currentScreen = PlaylistScreen
		m.playerModel = nil
		m.playlistModel.RefreshData()
		return m, nil

	case progressTickMsg:
		m.controller.OnProgressTick(msg.status.Current, msg.status.Total)
		if m.currentScreen == PlayerScreen && m.playerModel != nil {
			cmd = m.playerModel.SetSnapshot(m.controller.Snapshot())
		}
		return m, tea.Batch(cmd, m.listenForProgress())

	case playbackDoneMsg:
		// Автопереход к следующему треку
		m.controller.OnNaturalEnd()
		m.playlistModel.RefreshData()
		if m.currentScreen == PlayerScreen && m.playerModel != nil {
			cmd = m.playerModel.SetSnapshot(m.controller.Snapshot())
		}
		return m, tea.Batch(cmd, m.listenForDone())

	case noticeMsg:
		return m, tea.Batch(m.showNotice(msg.text), m.listenForNotices())

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		// Запоминаем размеры для моделей, создаваемых позже
		size := msg
		m.windowSize = &size
	}

	// Передаем сообщение активной модели
	switch m.currentScreen {
	case PlaylistScreen:
		var playlistCmd tea.Cmd
		m.playlistModel, playlistCmd = m.playlistModel.Update(msg)
		cmd = playlistCmd

	case PlayerScreen:
		if m.playerModel != nil {
			var playerCmd tea.Cmd
			m.playerModel, playerCmd = m.playerModel.Update(msg)
			cmd = playerCmd
		}
	}

	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	var view string
	switch m.currentScreen {
	case PlaylistScreen:
		view = m.playlistModel.View()

	case PlayerScreen:
		if m.playerModel != nil {
			view = m.playerModel.View()
		} else {
			view = "Ошибка: модель плеера не инициализирована"
		}

	default:
		view = "Неизвестный экран"
	}

	if m.notice != "" {
		view += "\n" + noticeStyle.Render(m.notice)
	}
	return view
}

// Close закрывает ресурсы главной модели
func (m *MainModel) Close() {
	m.controller.Stop()
	if m.audio != nil {
		m.audio.Close()
	}
}

// openPlayerScreen создает модель плеера и переключает экран
func (m *MainModel) openPlayerScreen() tea.Cmd {
	m.currentScreen = PlayerScreen
	m.playerModel = tuiPlayer.NewModel(m.controller)

	cmd := m.playerModel.Init()
	if m.windowSize != nil {
		var sizeCmd tea.Cmd
		m.playerModel, sizeCmd = m.playerModel.Update(*m.windowSize)
		cmd = tea.Batch(cmd, sizeCmd)
	}
	return cmd
}

// deleteTrack удаляет трек из хранилища, обновляет каталог и сверяет
// с ним сессию воспроизведения
func (m *MainModel) deleteTrack(msg playlist.DeleteConfirmedMsg) tea.Cmd {
	if err := m.store.DeleteByID(msg.ID); err != nil {
		return m.showNotice(fmt.Sprintf("⚠️ Не удалось удалить «%s»: %v", msg.DisplayName, err))
	}
	if err := m.catalog.Refresh(m.store); err != nil {
		return m.showNotice(fmt.Sprintf("⚠️ Ошибка обновления каталога: %v", err))
	}
	m.controller.OnTrackDeleted(msg.ID)
	m.playlistModel.RefreshData()
	return m.showNotice("🗑 Трек удалён")
}

// showNotice показывает уведомление и взводит таймер его скрытия
func (m *MainModel) showNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// listenForProgress слушает обновления позиции от аудиовыхода
func (m *MainModel) listenForProgress() tea.Cmd {
	return func() tea.Msg {
		status, ok := <-m.audio.Progress()
		if !ok {
			return nil
		}
		return progressTickMsg{status: status}
	}
}

// listenForDone слушает сигнал естественного завершения трека
func (m *MainModel) listenForDone() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.audio.Done(); !ok {
			return nil
		}
		return playbackDoneMsg{}
	}
}

// listenForNotices слушает уведомления контроллера
func (m *MainModel) listenForNotices() tea.Cmd {
	return func() tea.Msg {
		text, ok := <-m.controller.Notices()
		if !ok {
			return nil
		}
		return noticeMsg{text: text}
	}
}
