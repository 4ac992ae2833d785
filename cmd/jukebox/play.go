package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-jukebox/internal/controller"
	"github.com/hazadus/go-jukebox/internal/metadata"
	"github.com/hazadus/go-jukebox/internal/player"
)

// Шаг перемотки стрелками
const seekStep = 5 * time.Second

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play [trackid]",
		Short: "Play a track by its ID",
		Long:  `Play a track from the local library by its ID. Without an ID playback starts from the first track.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			index := 0
			if len(args) == 1 {
				trackID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("неверный ID трека: %s", args[0])
				}
				index = app.Catalog.IndexOf(trackID)
				if index < 0 {
					return fmt.Errorf("трек с ID %d не найден", trackID)
				}
			}
			return app.playFromIndex(ctx, index)
		},
	}
}

// enableRawMode включает режим raw для терминала (без буферизации и echo)
func enableRawMode() {
	cmd := exec.Command("stty", "-echo", "-icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Игнорируем ошибку, так как это не критично для работы плеера
}

// disableRawMode восстанавливает нормальный режим терминала
func disableRawMode() {
	cmd := exec.Command("stty", "echo", "icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run()
}

// readSingleChar читает одиночный символ без ожидания Enter
func readSingleChar() (byte, error) {
	buffer := make([]byte, 1)
	_, err := os.Stdin.Read(buffer)
	return buffer[0], err
}

func (app *Application) playFromIndex(ctx context.Context, index int) error {
	if app.Catalog.Len() == 0 {
		return fmt.Errorf("библиотека пуста, добавьте треки командой 'add'")
	}

	// Создаем аудиовыход и контроллер воспроизведения
	p := player.NewPlayer()
	defer p.Close()

	ctrl := controller.New(app.Catalog, p)
	ctrl.LoadTrack(index)
	if ctrl.State() == controller.Empty {
		// Уведомление об ошибке привязки уже в канале контроллера
		select {
		case notice := <-ctrl.Notices():
			return fmt.Errorf("%s", notice)
		default:
			return fmt.Errorf("не удалось начать воспроизведение")
		}
	}

	app.printTrackInfo(ctrl)

	fmt.Printf("🎮 Управление:\n")
	fmt.Printf("   [Пробел] - пауза/воспроизведение\n")
	fmt.Printf("   [n]/[p]  - следующий/предыдущий трек\n")
	fmt.Printf("   [←]/[→]  - перемотка\n")
	fmt.Printf("   [Ctrl+C] - остановить и выйти\n")
	fmt.Println()

	// Включаем raw режим для чтения одиночных клавиш
	enableRawMode()
	defer disableRawMode()

	// Запускаем горутину для обработки клавиш
	go func() {
		for {
			char, err := readSingleChar()
			if err != nil {
				continue
			}

			switch char {
			case ' ':
				ctrl.TogglePlay()
			case 'n':
				ctrl.PlayNext(false)
			case 'p':
				ctrl.PlayPrevious()
			case 27:
				// Стрелки приходят последовательностью ESC [ C/D
				second, err := readSingleChar()
				if err != nil || second != '[' {
					continue
				}
				third, err := readSingleChar()
				if err != nil {
					continue
				}
				switch third {
				case 'C':
					seekBy(ctrl, seekStep)
				case 'D':
					seekBy(ctrl, -seekStep)
				}
			}
		}
	}()

	lastID := ctrl.CurrentID()

	// Главный цикл обработки событий
	for {
		select {
		case status := <-p.Progress():
			ctrl.OnProgressTick(status.Current, status.Total)
			displayProgress(ctrl.Snapshot())

		case <-p.Done():
			ctrl.OnNaturalEnd()
			if app.Catalog.Len() == 1 {
				// Единственный трек не перезапускается по завершении
				fmt.Println("\n✅ Воспроизведение завершено")
				return nil
			}

		case notice := <-ctrl.Notices():
			fmt.Printf("\n%s\n", notice)
			if ctrl.State() == controller.Empty {
				return nil
			}

		case <-ctx.Done():
			fmt.Println("\n⏹️  Воспроизведение остановлено")
			ctrl.Stop()
			return nil
		}

		// Показываем заголовок нового трека при автопереходе
		if id := ctrl.CurrentID(); id != lastID && id != 0 {
			lastID = id
			fmt.Println()
			app.printTrackInfo(ctrl)
		}
	}
}

// printTrackInfo выводит метаданные текущего трека
func (app *Application) printTrackInfo(ctrl *controller.Controller) {
	index := ctrl.CurrentIndex()
	track, ok := app.Catalog.ByIndex(index)
	if !ok {
		return
	}

	info := metadata.NewExtractor().ExtractFromPayload(track.Name, track.Payload)

	fmt.Printf("🎵 Сейчас играет:\n")
	fmt.Printf("   ID: %d\n", track.ID)
	fmt.Printf("   Исполнитель: %s\n", info.Artist)
	fmt.Printf("   Название: %s\n", info.Title)
	fmt.Printf("   Альбом: %s\n", info.Album)
	fmt.Println()
}

// seekBy перематывает текущий трек на смещение относительно позиции
func seekBy(ctrl *controller.Controller, delta time.Duration) {
	snap := ctrl.Snapshot()
	if snap.Total <= 0 {
		return
	}
	fraction := float64(snap.Current+delta) / float64(snap.Total)
	_ = ctrl.Seek(fraction)
}

// displayProgress отображает прогресс воспроизведения
func displayProgress(snap controller.Snapshot) {
	statusIcon := "⏱️"
	statusText := "Воспроизведение"
	if snap.State == controller.LoadedPaused {
		statusIcon = "⏸️"
		statusText = "На паузе"
	}

	if snap.Total > 0 {
		fmt.Printf("\r%s  %.1f%% | %s / %s | Статус: %s",
			statusIcon,
			snap.Percent,
			snap.CurrentTime,
			snap.TotalTime,
			statusText)
	} else {
		fmt.Printf("\r%s  %s | Статус: %s",
			statusIcon,
			snap.CurrentTime,
			statusText)
	}
}
