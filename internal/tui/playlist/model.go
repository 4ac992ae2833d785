// Package playlist содержит модель экрана списка треков для TUI
package playlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hazadus/go-jukebox/internal/controller"
	"github.com/hazadus/go-jukebox/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	activeItemStyle   = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("42"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	confirmStyle      = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("203"))
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// TrackSelectedMsg отправляется при выборе трека для воспроизведения
type TrackSelectedMsg struct {
	Index int
}

// DeleteConfirmedMsg отправляется после подтверждения удаления трека
type DeleteConfirmedMsg struct {
	ID          int64
	DisplayName string
}

// OpenPlayerMsg отправляется для перехода на экран плеера без смены трека
type OpenPlayerMsg struct{}

// trackItem реализует интерфейс list.Item для строки каталога
type trackItem struct {
	entry controller.Entry
	index int
}

func (i trackItem) FilterValue() string {
	return i.entry.DisplayName
}

// trackItemDelegate реализует отображение элементов списка
type trackItemDelegate struct{}

func (d trackItemDelegate) Height() int                             { return 1 }
func (d trackItemDelegate) Spacing() int                            { return 0 }
func (d trackItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d trackItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(trackItem)
	if !ok {
		return
	}

	// Текущий трек помечается маркером воспроизведения
	marker := "  "
	if i.entry.Active {
		marker = "▶ "
	}
	str := fmt.Sprintf("%-4d %s%s",
		i.entry.ID,
		marker,
		utils.TruncateString(i.entry.DisplayName, 60))

	fn := itemStyle.Render
	if i.entry.Active {
		fn = activeItemStyle.Render
	}
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана списка треков
type Model struct {
	list       list.Model
	controller *controller.Controller

	// Трек, ожидающий подтверждения удаления; nil, если подтверждение не запрошено
	pendingDelete *controller.Entry
	quitting      bool
}

// NewModel создает новую модель списка треков
func NewModel(ctrl *controller.Controller) *Model {
	l := list.New(nil, trackItemDelegate{}, 0, 0)
	l.Title = "Библиотека"
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	m := &Model{
		list:       l,
		controller: ctrl,
	}
	m.RefreshData()
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// RefreshData перечитывает каталог в существующий список
func (m *Model) RefreshData() {
	entries := m.controller.Snapshot().Entries

	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = trackItem{entry: entry, index: i}
	}
	m.list.SetItems(items)
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4) // Оставляем место для заголовка и справки
		return m, nil

	case tea.KeyMsg:
		// Во время фильтрации клавиши принадлежат списку
		if m.list.FilterState() == list.Filtering {
			break
		}

		// Запрошенное удаление ждет явного подтверждения
		if m.pendingDelete != nil {
			entry := *m.pendingDelete
			m.pendingDelete = nil
			if msg.String() == "y" {
				return m, func() tea.Msg {
					return DeleteConfirmedMsg{ID: entry.ID, DisplayName: entry.DisplayName}
				}
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if item, ok := m.list.SelectedItem().(trackItem); ok {
				return m, func() tea.Msg {
					return TrackSelectedMsg{Index: item.index}
				}
			}

		case " ":
			m.controller.TogglePlay()
			m.RefreshData()
			return m, nil

		case "d":
			if item, ok := m.list.SelectedItem().(trackItem); ok {
				entry := item.entry
				m.pendingDelete = &entry
			}
			return m, nil

		case "p":
			if m.controller.State() != controller.Empty {
				return m, func() tea.Msg {
					return OpenPlayerMsg{}
				}
			}
		}
	}

	// Обновляем список
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	view := m.list.View()

	if m.pendingDelete != nil {
		confirm := confirmStyle.Render(
			fmt.Sprintf("Удалить «%s»? y: да • любая клавиша: отмена", m.pendingDelete.DisplayName),
		)
		return view + "\n" + confirm
	}

	extraHelp := helpStyle.Render("Enter: воспроизвести • Пробел: пауза • d: удалить • p: плеер • q: выход")
	return view + "\n" + extraHelp
}
