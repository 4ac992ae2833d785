package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazadus/go-jukebox/internal/catalog"
	"github.com/hazadus/go-jukebox/internal/config"
	"github.com/hazadus/go-jukebox/internal/entitlement"
	"github.com/hazadus/go-jukebox/internal/store"
)

// captureOutput перехватывает stdout и stderr во время выполнения функции
func captureOutput(t *testing.T, fn func()) string {
	// Сохраняем оригинальные stdout и stderr
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	// Создаем pipe для перехвата
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Ошибка создания pipe: %v", err)
	}

	// Перенаправляем stdout и stderr
	os.Stdout = w
	os.Stderr = w

	// Выполняем функцию
	fn()

	// Восстанавливаем оригинальные stdout и stderr
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	// Закрываем writer
	w.Close()

	// Читаем результат
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("Ошибка чтения результата: %v", err)
	}

	return buf.String()
}

// createTestApplication создает тестовое приложение с временной библиотекой
func createTestApplication(t *testing.T) *Application {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "library.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("Ошибка открытия хранилища: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cat := catalog.New()
	if err := cat.Refresh(st); err != nil {
		t.Fatalf("Ошибка обновления каталога: %v", err)
	}

	gate, err := entitlement.NewGate(st)
	if err != nil {
		t.Fatalf("Ошибка создания Gate: %v", err)
	}

	return &Application{
		Config:  &config.Config{DBPath: dbPath},
		Store:   st,
		Catalog: cat,
		Gate:    gate,
	}
}

// addTestTrack сохраняет трек в хранилище и обновляет каталог
func addTestTrack(t *testing.T, app *Application, name string) int64 {
	t.Helper()

	id, err := app.Store.Add(name, []byte{0xFF, 0xFB, 0x90})
	if err != nil {
		t.Fatalf("Ошибка добавления трека: %v", err)
	}
	if err := app.Catalog.Refresh(app.Store); err != nil {
		t.Fatalf("Ошибка обновления каталога: %v", err)
	}
	return id
}

// TestCmdList проверяет, что команда `list` корректно выводит список треков
func TestCmdList(t *testing.T) {
	app := createTestApplication(t)
	addTestTrack(t, app, "Test Track.mp3")

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	expectedStrings := []string{
		"📚 Найдено треков: 1",
		"Test Track",
		"📗 Бесплатный тариф: 1 из 10 треков",
	}
	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Вывод команды list не содержит ожидаемую строку '%s': %s", expected, output)
		}
	}

	// Расширение файла не показывается в названии
	if strings.Contains(output, "Test Track.mp3") {
		t.Errorf("Название трека не должно содержать расширение: %s", output)
	}
}

// TestCmdListEmpty проверяет, что команда `list` корректно обрабатывает пустую библиотеку
func TestCmdListEmpty(t *testing.T) {
	app := createTestApplication(t)

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	if !strings.Contains(output, "📚 Библиотека пуста") {
		t.Errorf("Команда list не отобразила сообщение о пустой библиотеке: %s", output)
	}
}

// TestCmdListProMode проверяет строку тарифа после активации pro-режима
func TestCmdListProMode(t *testing.T) {
	app := createTestApplication(t)
	addTestTrack(t, app, "Track.mp3")

	if _, err := app.Gate.TryActivate("DEMOPRO2025"); err != nil {
		t.Fatalf("Ошибка активации: %v", err)
	}

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	if !strings.Contains(output, "⭐ Pro-режим: лимит треков снят") {
		t.Errorf("Команда list не отобразила pro-режим: %s", output)
	}
}

// TestCmdAdd проверяет, что команда `add` сохраняет файл в библиотеку
func TestCmdAdd(t *testing.T) {
	app := createTestApplication(t)

	filePath := filepath.Join(t.TempDir(), "song.mp3")
	if err := os.WriteFile(filePath, []byte{0xFF, 0xFB, 0x90}, 0o644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	addCmd := app.createAddCommand()

	output := captureOutput(t, func() {
		addCmd.SetArgs([]string{filePath})
		if err := addCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды add: %v", err)
		}
	})

	if !strings.Contains(output, "✅ Сохранено треков: 1") {
		t.Errorf("Команда add не отобразила ожидаемый вывод: %s", output)
	}
	if app.Catalog.Len() != 1 {
		t.Errorf("Ожидался 1 трек в каталоге, получено %d", app.Catalog.Len())
	}
}

// TestCmdAddOverLimit проверяет отказ при превышении лимита бесплатного тарифа
func TestCmdAddOverLimit(t *testing.T) {
	app := createTestApplication(t)

	for i := 0; i < 10; i++ {
		addTestTrack(t, app, "existing.mp3")
	}

	filePath := filepath.Join(t.TempDir(), "eleven.mp3")
	if err := os.WriteFile(filePath, []byte{0xFF, 0xFB}, 0o644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	addCmd := app.createAddCommand()

	output := captureOutput(t, func() {
		addCmd.SetArgs([]string{filePath})
		if err := addCmd.Execute(); err != nil {
			t.Errorf("Отказ по лимиту не должен быть ошибкой команды: %v", err)
		}
	})

	if !strings.Contains(output, "❌ Лимит в 10 бесплатных треков исчерпан") {
		t.Errorf("Команда add не отобразила сообщение о лимите: %s", output)
	}
	if app.Catalog.Len() != 10 {
		t.Errorf("Каталог не должен измениться при отказе, получено %d", app.Catalog.Len())
	}
}

// TestCmdAddInvalidArgs проверяет обработку неверных аргументов в команде add
func TestCmdAddInvalidArgs(t *testing.T) {
	app := createTestApplication(t)

	addCmd := app.createAddCommand()

	var buf bytes.Buffer
	addCmd.SetOut(&buf)
	addCmd.SetErr(&buf)

	// Выполняем команду без аргументов
	if err := addCmd.Execute(); err == nil {
		t.Error("Ожидалась ошибка при выполнении команды add без аргументов")
	}

	output := buf.String()
	if !strings.Contains(output, "requires at least 1 arg") {
		t.Errorf("Команда add не отобразила ошибку о неверных аргументах: %s", output)
	}
}

// TestCmdDelete проверяет, что команда `delete` удаляет указанный трек
func TestCmdDelete(t *testing.T) {
	app := createTestApplication(t)

	id1 := addTestTrack(t, app, "First.mp3")
	addTestTrack(t, app, "Second.mp3")

	deleteCmd := app.createDeleteCommand()

	output := captureOutput(t, func() {
		deleteCmd.SetArgs([]string{"--yes", "1"})
		if err := deleteCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды delete: %v", err)
		}
	})

	if !strings.Contains(output, "✅ Трек «First» удалён из библиотеки") {
		t.Errorf("Команда delete не отобразила ожидаемый вывод: %s", output)
	}

	// Проверяем, что трек удален и каталог обновлен
	if app.Catalog.Len() != 1 {
		t.Errorf("Ожидался 1 трек после удаления, получено %d", app.Catalog.Len())
	}
	if app.Catalog.IndexOf(id1) != -1 {
		t.Error("Удаленный трек не должен оставаться в каталоге")
	}
}

// TestCmdDeleteInvalidID проверяет обработку неверного ID в команде delete
func TestCmdDeleteInvalidID(t *testing.T) {
	app := createTestApplication(t)

	deleteCmd := app.createDeleteCommand()

	output := captureOutput(t, func() {
		deleteCmd.SetArgs([]string{"invalid"})
		if err := deleteCmd.Execute(); err != nil {
			t.Errorf("Команда delete завершилась с ошибкой при неверном ID: %v", err)
		}
	})

	if !strings.Contains(output, "❌ Ошибка: неверный ID") {
		t.Errorf("Команда delete не отобразила ошибку для неверного ID: %s", output)
	}
}

// TestCmdDeleteMissingTrack проверяет удаление несуществующего трека
func TestCmdDeleteMissingTrack(t *testing.T) {
	app := createTestApplication(t)

	deleteCmd := app.createDeleteCommand()

	output := captureOutput(t, func() {
		deleteCmd.SetArgs([]string{"--yes", "99"})
		if err := deleteCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды delete: %v", err)
		}
	})

	if !strings.Contains(output, "❌ Трек с ID 99 не найден") {
		t.Errorf("Команда delete не отобразила ошибку для отсутствующего трека: %s", output)
	}
}

// TestCmdActivate проверяет активацию pro-режима
func TestCmdActivate(t *testing.T) {
	app := createTestApplication(t)

	activateCmd := app.createActivateCommand()

	// Неверный код отклоняется
	output := captureOutput(t, func() {
		activateCmd.SetArgs([]string{"WRONGCODE"})
		if err := activateCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды activate: %v", err)
		}
	})
	if !strings.Contains(output, "❌ Неверный код активации") {
		t.Errorf("Команда activate не отклонила неверный код: %s", output)
	}
	if app.Gate.IsPro() {
		t.Error("Неверный код не должен активировать pro-режим")
	}

	// Верный код активирует pro-режим
	output = captureOutput(t, func() {
		activateCmd.SetArgs([]string{"DEMOPRO2025"})
		if err := activateCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды activate: %v", err)
		}
	})
	if !strings.Contains(output, "🎉 Pro-режим активирован") {
		t.Errorf("Команда activate не отобразила успешную активацию: %s", output)
	}
	if !app.Gate.IsPro() {
		t.Error("Верный код должен активировать pro-режим")
	}

	// Повторная активация сообщает о действующем pro-режиме
	output = captureOutput(t, func() {
		activateCmd.SetArgs([]string{"DEMOPRO2025"})
		if err := activateCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды activate: %v", err)
		}
	})
	if !strings.Contains(output, "⭐ Pro-режим уже активирован") {
		t.Errorf("Команда activate не сообщила о повторной активации: %s", output)
	}
}
