// Package store содержит долговременное хранилище треков на базе SQLite
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // Драйвер SQLite
)

var (
	// ErrStorageUnavailable возвращается, когда хранилище не удалось открыть или инициализировать
	ErrStorageUnavailable = errors.New("хранилище недоступно")
	// ErrWrite возвращается при сбое операции записи; состояние хранилища остается прежним
	ErrWrite = errors.New("ошибка записи в хранилище")
)

// Track представляет сохраненный трек: неизменяемые аудиоданные и метаданные
type Track struct {
	ID        int64     // Уникальный идентификатор, назначается хранилищем
	Name      string    // Исходное имя файла
	Payload   []byte    // Бинарные аудиоданные
	CreatedAt time.Time // Время добавления
}

const schema = `
	CREATE TABLE IF NOT EXISTS tracks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		payload BLOB NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

// Store предоставляет доступ к библиотеке треков и флагу Pro-режима
type Store struct {
	db *sql.DB
}

// Open открывает (при необходимости создавая) базу данных по указанному пути.
// Повторный вызов на существующей базе безопасен: схема создается идемпотентно.
func Open(dbPath string) (*Store, error) {
	// Убеждаемся, что директория для базы существует
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// sql.Open ленив, проверяем доступность явно
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return &Store{db: db}, nil
}

// Close закрывает соединение с базой данных
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add сохраняет новый трек и возвращает назначенный идентификатор.
// Идентификаторы монотонно растут и никогда не переиспользуются (AUTOINCREMENT).
func (s *Store) Add(name string, payload []byte) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO tracks (name, payload, created_at) VALUES (?, ?, ?)",
		name, payload, time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return id, nil
}

// GetAll возвращает все треки, упорядоченные по идентификатору по возрастанию.
// Для пустой библиотеки возвращается пустой срез, а не ошибка.
func (s *Store) GetAll() ([]Track, error) {
	rows, err := s.db.Query("SELECT id, name, payload, created_at FROM tracks ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения треков: %w", err)
	}
	defer rows.Close()

	tracks := make([]Track, 0)
	for rows.Next() {
		var t Track
		if err := rows.Scan(&t.ID, &t.Name, &t.Payload, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения трека: %w", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения треков: %w", err)
	}
	return tracks, nil
}

// Count возвращает количество треков в хранилище
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчета треков: %w", err)
	}
	return count, nil
}

// DeleteByID удаляет трек по идентификатору.
// Отсутствующий идентификатор не считается ошибкой.
func (s *Store) DeleteByID(id int64) error {
	if _, err := s.db.Exec("DELETE FROM tracks WHERE id = ?", id); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

const proFlagKey = "is_pro"

// IsPro возвращает сохраненный флаг Pro-режима.
// Отсутствие записи означает бесплатный тариф.
func (s *Store) IsPro() (bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", proFlagKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка чтения флага Pro: %w", err)
	}
	return value == "true", nil
}

// SetPro сохраняет флаг Pro-режима. Операции понижения тарифа не существует.
func (s *Store) SetPro() error {
	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		proFlagKey, "true",
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
