// Package player содержит компоненты для управления воспроизведением аудио
package player

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
)

// Status представляет текущий статус плеера
type Status struct {
	Current   time.Duration // Текущая позиция
	Total     time.Duration // Общая продолжительность
	IsPlaying bool          // Воспроизводится ли трек
}

// Player управляет единственным аудиовыходом приложения.
// Повторный вызов Play освобождает ресурсы предыдущего трека.
type Player struct {
	// Каналы для обратной связи
	progressChan chan Status
	doneChan     chan bool

	// Внутреннее состояние
	ctx           context.Context
	cancel        context.CancelFunc
	mutex         sync.RWMutex
	isInitialized bool
	isPaused      bool
	currentName   string

	// Компоненты для воспроизведения
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	format   beep.Format
}

// NewPlayer создает новый экземпляр плеера
func NewPlayer() *Player {
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		progressChan: make(chan Status, 1),
		doneChan:     make(chan bool, 1),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Progress возвращает канал для получения обновлений прогресса
func (p *Player) Progress() <-chan Status {
	return p.progressChan
}

// Done возвращает канал, в который отправляется сигнал при естественном
// завершении воспроизведения
func (p *Player) Done() <-chan bool {
	return p.doneChan
}

// Play декодирует аудиоданные и начинает воспроизведение.
// Предыдущее воспроизведение останавливается, его ресурсы освобождаются.
func (p *Player) Play(name string, payload []byte) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// Останавливаем текущее воспроизведение, если есть
	p.stopInternal()

	// Декодируем MP3 из данных хранилища
	streamer, format, err := mp3.Decode(payloadReader{bytes.NewReader(payload)})
	if err != nil {
		return fmt.Errorf("ошибка декодирования MP3: %w", err)
	}

	// Инициализируем speaker (только один раз)
	if !p.isInitialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5)); err != nil {
			streamer.Close()
			return fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
		p.isInitialized = true
	}

	p.streamer = streamer
	p.format = format
	p.currentName = name

	// Создаем контроллер паузы
	p.ctrl = &beep.Ctrl{
		Streamer: streamer,
		Paused:   false,
	}
	p.isPaused = false

	// Запускаем воспроизведение с уведомлением о естественном завершении
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		select {
		case p.doneChan <- true:
		default:
		}
	})))

	// Запускаем мониторинг прогресса в отдельной горутине
	go p.monitorProgress(format)

	return nil
}

// Pause приостанавливает воспроизведение
func (p *Player) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl != nil && !p.isPaused {
		speaker.Lock()
		p.isPaused = true
		p.ctrl.Paused = true
		speaker.Unlock()
	}
}

// Resume возобновляет приостановленное воспроизведение
func (p *Player) Resume() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl != nil && p.isPaused {
		speaker.Lock()
		p.isPaused = false
		p.ctrl.Paused = false
		speaker.Unlock()
	}
}

// Seek перематывает трек на позицию, заданную долей от полной длительности
func (p *Player) Seek(fraction float64) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.streamer == nil {
		return nil
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	speaker.Lock()
	defer speaker.Unlock()

	position := int(fraction * float64(p.streamer.Len()))
	if position >= p.streamer.Len() {
		position = p.streamer.Len() - 1
	}
	if position < 0 {
		position = 0
	}
	if err := p.streamer.Seek(position); err != nil {
		return fmt.Errorf("ошибка перемотки: %w", err)
	}
	return nil
}

// Position возвращает текущую позицию воспроизведения
func (p *Player) Position() time.Duration {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Position())
}

// Duration возвращает полную длительность текущего трека
func (p *Player) Duration() time.Duration {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Len())
}

// Stop останавливает воспроизведение и освобождает привязку к данным
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopInternal()
}

// stopInternal внутренний метод остановки (должен вызываться под мьютексом)
func (p *Player) stopInternal() {
	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
	}

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	p.currentName = ""
	p.isPaused = false
}

// Close закрывает плеер и освобождает ресурсы
func (p *Player) Close() error {
	p.cancel()
	p.Stop()
	close(p.progressChan)
	close(p.doneChan)
	return nil
}

// IsPlaying возвращает true, если трек воспроизводится
func (p *Player) IsPlaying() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.ctrl != nil && !p.isPaused
}

// CurrentName возвращает имя текущего трека
func (p *Player) CurrentName() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.currentName
}

// monitorProgress мониторит прогресс воспроизведения и отправляет обновления
func (p *Player) monitorProgress(format beep.Format) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.mutex.RLock()

			if p.streamer == nil || p.ctrl == nil {
				p.mutex.RUnlock()
				return
			}

			speaker.Lock()
			currentPos := format.SampleRate.D(p.streamer.Position())
			totalLen := format.SampleRate.D(p.streamer.Len())
			isPaused := p.isPaused
			speaker.Unlock()

			p.mutex.RUnlock()

			// Отправляем обновление статуса
			status := Status{
				Current:   currentPos,
				Total:     totalLen,
				IsPlaying: !isPaused,
			}

			select {
			case p.progressChan <- status:
			default:
				// Если канал заблокирован, пропускаем обновление
			}
		}
	}
}

// payloadReader оборачивает bytes.Reader в io.ReadSeekCloser для декодера
type payloadReader struct {
	*bytes.Reader
}

func (payloadReader) Close() error { return nil }
