package player

import (
	"testing"
	"time"
)

func TestPlayInvalidPayload(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	// Данные, которые нельзя декодировать как MP3
	err := p.Play("broken.mp3", []byte("это не mp3"))
	if err == nil {
		t.Error("Ожидалась ошибка при воспроизведении невалидных данных")
	}

	// Привязка не должна остаться после неудачного Play
	if p.IsPlaying() {
		t.Error("Плеер не должен воспроизводить после ошибки декодирования")
	}
	if p.CurrentName() != "" {
		t.Error("Имя трека должно быть пустым после ошибки декодирования")
	}
}

func TestStopResetsState(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	_ = p.Play("broken.mp3", []byte{0x00})
	p.Stop()

	if p.IsPlaying() {
		t.Error("Плеер не должен воспроизводить после остановки")
	}
	if p.CurrentName() != "" {
		t.Error("Имя текущего трека должно быть очищено после остановки")
	}
	if p.Duration() != 0 {
		t.Error("Длительность должна быть нулевой без привязанного трека")
	}
	if p.Position() != 0 {
		t.Error("Позиция должна быть нулевой без привязанного трека")
	}
}

func TestPauseResumeWithoutTrack(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	// Пауза и возобновление без трека не должны паниковать
	p.Pause()
	p.Resume()

	if p.IsPlaying() {
		t.Error("Плеер без трека не должен считаться воспроизводящим")
	}
}

func TestSeekWithoutTrack(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	// Перемотка без привязанного трека - no-op
	if err := p.Seek(0.5); err != nil {
		t.Errorf("Перемотка без трека не должна возвращать ошибку: %v", err)
	}
}

func TestPlayerChannels(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	if p.Progress() == nil {
		t.Error("Канал прогресса не должен быть nil")
	}
	if p.Done() == nil {
		t.Error("Канал завершения не должен быть nil")
	}

	// Каналы не должны содержать сообщений изначально
	select {
	case <-p.Progress():
		t.Error("Канал прогресса должен быть пуст изначально")
	default:
	}

	select {
	case <-p.Done():
		t.Error("Канал завершения должен быть пуст изначально")
	default:
	}
}

func TestPlayerConcurrentAccess(t *testing.T) {
	p := NewPlayer()
	defer p.Close()

	done := make(chan bool, 3)

	go func() {
		_ = p.Play("broken.mp3", []byte{0x01, 0x02})
		done <- true
	}()
	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Pause()
		done <- true
	}()
	go func() {
		time.Sleep(20 * time.Millisecond)
		p.Stop()
		done <- true
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(1 * time.Second):
			t.Fatal("Таймаут при тестировании конкурентного доступа")
		}
	}

	if p.IsPlaying() {
		t.Error("Плеер не должен воспроизводить после конкурентных операций")
	}
}
