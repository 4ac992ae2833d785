// Package player содержит модель экрана воспроизведения для TUI
package player

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hazadus/go-jukebox/internal/controller"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff")).
			MarginBottom(1)

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)
)

// Шаг перемотки стрелками
const seekStep = 5 * time.Second

// GoBackMsg отправляется для возврата к списку треков
type GoBackMsg struct{}

// Model представляет модель экрана воспроизведения
type Model struct {
	controller  *controller.Controller
	progressBar progress.Model
	snapshot    controller.Snapshot
	width       int
	height      int
}

// NewModel создает новую модель плеера
func NewModel(ctrl *controller.Controller) *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	return &Model{
		controller:  ctrl,
		progressBar: prog,
		snapshot:    ctrl.Snapshot(),
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return m.progressBar.SetPercent(m.snapshot.Percent / 100)
}

// SetSnapshot обновляет отображаемое состояние воспроизведения
func (m *Model) SetSnapshot(snapshot controller.Snapshot) tea.Cmd {
	m.snapshot = snapshot
	return m.progressBar.SetPercent(snapshot.Percent / 100)
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = min(60, msg.Width-10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			// Возвращаемся к списку, воспроизведение продолжается
			return m, func() tea.Msg {
				return GoBackMsg{}
			}

		case " ":
			m.controller.TogglePlay()
			return m, m.SetSnapshot(m.controller.Snapshot())

		case "n":
			m.controller.PlayNext(false)
			return m, m.SetSnapshot(m.controller.Snapshot())

		case "p":
			m.controller.PlayPrevious()
			return m, m.SetSnapshot(m.controller.Snapshot())

		case "left":
			return m, m.seekBy(-seekStep)

		case "right":
			return m, m.seekBy(seekStep)
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// seekBy перематывает текущий трек на смещение относительно позиции
func (m *Model) seekBy(delta time.Duration) tea.Cmd {
	if m.snapshot.Total <= 0 {
		return nil
	}
	fraction := float64(m.snapshot.Current+delta) / float64(m.snapshot.Total)
	_ = m.controller.Seek(fraction)
	return m.SetSnapshot(m.controller.Snapshot())
}

// View отображает модель
func (m *Model) View() string {
	if m.snapshot.State == controller.Empty {
		return fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			titleStyle.Render("🎵 Плеер"),
			trackInfoStyle.Render("Трек не выбран"),
			controlsStyle.Render("q/esc: назад к списку"),
		)
	}

	// Заголовок
	title := titleStyle.Render("🎵 Воспроизведение")

	// Название текущего трека
	var currentName string
	for _, entry := range m.snapshot.Entries {
		if entry.Active {
			currentName = entry.DisplayName
			break
		}
	}
	trackInfo := trackInfoStyle.Render(currentName)

	// Статус воспроизведения
	statusIcon := "⏸️"
	statusLabel := "Пауза"
	if m.snapshot.State == controller.LoadedPlaying {
		statusIcon = "▶️"
		statusLabel = "Воспроизведение"
	}
	statusText := statusStyle.Render(fmt.Sprintf("%s %s", statusIcon, statusLabel))

	// Прогресс-бар и время
	progressView := m.progressBar.View()
	timeText := fmt.Sprintf("%s / %s", m.snapshot.CurrentTime, m.snapshot.TotalTime)

	// Элементы управления
	controls := controlsStyle.Render(
		"Пробел: пауза • n/p: следующий/предыдущий • ←/→: перемотка • q/esc: назад",
	)

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\n%s\n%s\n\n%s",
		title,
		trackInfo,
		statusText,
		progressView,
		timeText,
		controls,
	)
}
