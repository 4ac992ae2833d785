// Package controller содержит машину состояний воспроизведения.
// Контроллер владеет единственным аудиовыходом, текущим индексом в каталоге
// и логикой переходов: выбор трека, следующий/предыдущий, автопереход
// по завершении, сверка с каталогом после удаления.
package controller

import (
	"fmt"
	"sync"
	"time"

	"github.com/hazadus/go-jukebox/internal/catalog"
	"github.com/hazadus/go-jukebox/internal/utils"
)

// State представляет состояние воспроизведения
type State int

// Состояния контроллера
const (
	// Empty - трек не выбран
	Empty State = iota
	// LoadedPaused - трек загружен, воспроизведение на паузе
	LoadedPaused
	// LoadedPlaying - трек загружен и воспроизводится
	LoadedPlaying
)

// String возвращает название состояния
func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case LoadedPaused:
		return "Paused"
	case LoadedPlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// Output описывает аудиовыход, которым владеет контроллер.
// Play привязывает выход к новым данным, освобождая предыдущую привязку.
type Output interface {
	Play(name string, payload []byte) error
	Pause()
	Resume()
	Stop()
	Seek(fraction float64) error
	Duration() time.Duration
}

// Entry описывает строку каталога для отображения
type Entry struct {
	ID          int64
	DisplayName string // Имя без расширения
	Active      bool   // Является ли трек текущим
}

// Snapshot - наблюдаемое состояние для слоя отображения
type Snapshot struct {
	Entries     []Entry
	State       State
	Current     time.Duration
	Total       time.Duration
	CurrentTime string // Формат M:SS
	TotalTime   string // Формат M:SS
	Percent     float64
}

// Controller - машина состояний воспроизведения поверх каталога и аудиовыхода
type Controller struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	output  Output

	state        State
	currentIndex int
	currentID    int64
	current      time.Duration
	total        time.Duration

	notices chan string
}

// New создает контроллер в состоянии Empty
func New(cat *catalog.Catalog, out Output) *Controller {
	return &Controller{
		catalog:      cat,
		output:       out,
		state:        Empty,
		currentIndex: -1,
		notices:      make(chan string, 8),
	}
}

// Notices возвращает канал уведомлений для слоя отображения
func (c *Controller) Notices() <-chan string {
	return c.notices
}

// notify отправляет уведомление, не блокируясь при заполненном канале
func (c *Controller) notify(message string) {
	select {
	case c.notices <- message:
	default:
	}
}

// LoadTrack привязывает аудиовыход к треку по индексу каталога и начинает
// воспроизведение. Индекс за пределами каталога игнорируется.
func (c *Controller) LoadTrack(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadTrackLocked(index)
}

func (c *Controller) loadTrackLocked(index int) {
	track, ok := c.catalog.ByIndex(index)
	if !ok {
		return
	}

	if err := c.output.Play(track.Name, track.Payload); err != nil {
		// Нечитаемые данные: откатываемся в Empty, не оставляя висящей привязки
		c.output.Stop()
		c.resetLocked()
		c.notify(fmt.Sprintf("⚠️ Не удалось воспроизвести «%s»: %v", utils.DisplayName(track.Name), err))
		return
	}

	c.state = LoadedPlaying
	c.currentIndex = index
	c.currentID = track.ID
	c.current = 0
	c.total = c.output.Duration()
}

// TogglePlay переключает воспроизведение. Из состояния Empty при непустом
// каталоге загружается первый трек; при пустом каталоге ничего не происходит.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Empty:
		if c.catalog.Len() > 0 {
			c.loadTrackLocked(0)
		}
	case LoadedPlaying:
		c.pauseLocked()
	case LoadedPaused:
		c.playLocked()
	}
}

// Play возобновляет приостановленное воспроизведение
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playLocked()
}

func (c *Controller) playLocked() {
	if c.state == LoadedPaused {
		c.output.Resume()
		c.state = LoadedPlaying
	}
}

// Pause приостанавливает воспроизведение
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

func (c *Controller) pauseLocked() {
	if c.state == LoadedPlaying {
		c.output.Pause()
		c.state = LoadedPaused
	}
}

// PlayNext переходит к следующему треку с переходом через конец каталога
// на начало. Исключение: при автопереходе (естественное завершение трека)
// в каталоге из одного трека воспроизведение не перезапускается.
func (c *Controller) PlayNext(auto bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	length := c.catalog.Len()
	if length == 0 {
		return
	}

	next := c.currentIndex + 1
	if next >= length {
		if auto && length == 1 {
			return
		}
		next = 0
	}
	c.loadTrackLocked(next)
}

// PlayPrevious переходит к предыдущему треку с переходом через начало
// каталога на конец. В отличие от PlayNext, переход не подавляется ни при
// каких условиях.
func (c *Controller) PlayPrevious() {
	c.mu.Lock()
	defer c.mu.Unlock()

	length := c.catalog.Len()
	if length == 0 {
		return
	}

	prev := c.currentIndex - 1
	if prev < 0 {
		prev = length - 1
	}
	c.loadTrackLocked(prev)
}

// OnNaturalEnd вызывается при естественном завершении трека
func (c *Controller) OnNaturalEnd() {
	c.PlayNext(true)
}

// OnTrackDeleted сверяет сессию с каталогом после удаления трека.
// Вызывается после того, как каталог обновлен. Если удален текущий трек,
// воспроизведение останавливается и сессия сбрасывается; иначе индекс
// текущего трека пересчитывается по его идентификатору.
func (c *Controller) OnTrackDeleted(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Empty {
		return
	}

	if id == c.currentID {
		c.output.Stop()
		c.resetLocked()
		return
	}

	// Удаление трека выше по списку сдвигает индексы: ищем текущий трек по ID
	index := c.catalog.IndexOf(c.currentID)
	if index < 0 {
		c.output.Stop()
		c.resetLocked()
		return
	}
	c.currentIndex = index
}

// OnProgressTick принимает очередное обновление позиции воспроизведения.
// Пока длительность неизвестна, обновление игнорируется.
func (c *Controller) OnProgressTick(current, total time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if total <= 0 {
		return
	}
	c.current = current
	c.total = total
}

// Seek перематывает текущий трек на позицию, заданную долей длительности
func (c *Controller) Seek(fraction float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Empty {
		return nil
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	if err := c.output.Seek(fraction); err != nil {
		return err
	}
	if c.total > 0 {
		c.current = time.Duration(fraction * float64(c.total))
	}
	return nil
}

// Stop останавливает воспроизведение и сбрасывает сессию
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Empty {
		return
	}
	c.output.Stop()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.state = Empty
	c.currentIndex = -1
	c.currentID = 0
	c.current = 0
	c.total = 0
}

// State возвращает текущее состояние воспроизведения
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentIndex возвращает индекс текущего трека или -1
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentIndex
}

// CurrentID возвращает идентификатор текущего трека или 0
func (c *Controller) CurrentID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentID
}

// Snapshot собирает наблюдаемое состояние для отображения
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	tracks := c.catalog.Tracks()
	entries := make([]Entry, len(tracks))
	for i, track := range tracks {
		entries[i] = Entry{
			ID:          track.ID,
			DisplayName: utils.DisplayName(track.Name),
			Active:      c.state != Empty && track.ID == c.currentID,
		}
	}

	var percent float64
	if c.total > 0 {
		percent = float64(c.current) / float64(c.total) * 100
	}

	return Snapshot{
		Entries:     entries,
		State:       c.state,
		Current:     c.current,
		Total:       c.total,
		CurrentTime: utils.FormatTime(c.current),
		TotalTime:   utils.FormatTime(c.total),
		Percent:     percent,
	}
}
