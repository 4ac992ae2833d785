// Package catalog содержит упорядоченное представление библиотеки треков в памяти
package catalog

import (
	"fmt"
	"sync"

	"github.com/hazadus/go-jukebox/internal/store"
)

// Source описывает источник треков для обновления каталога
type Source interface {
	GetAll() ([]store.Track, error)
}

// Catalog хранит снимок библиотеки: все треки, упорядоченные по ID.
// Содержимое меняется только через Refresh, читатели никогда не видят
// частично обновленный список.
type Catalog struct {
	mu     sync.RWMutex
	tracks []store.Track
}

// New создает пустой каталог
func New() *Catalog {
	return &Catalog{
		tracks: make([]store.Track, 0),
	}
}

// Refresh перечитывает все треки из источника и атомарно заменяет снимок.
// Вызывается синхронно после каждой мутации хранилища, до любых зависимых чтений.
func (c *Catalog) Refresh(src Source) error {
	tracks, err := src.GetAll()
	if err != nil {
		return fmt.Errorf("ошибка обновления каталога: %w", err)
	}

	c.mu.Lock()
	c.tracks = tracks
	c.mu.Unlock()
	return nil
}

// Len возвращает количество треков в снимке
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tracks)
}

// ByIndex возвращает трек по позиции в снимке
func (c *Catalog) ByIndex(index int) (store.Track, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if index < 0 || index >= len(c.tracks) {
		return store.Track{}, false
	}
	return c.tracks[index], true
}

// IndexOf возвращает позицию трека с указанным ID или -1, если трек не найден
func (c *Catalog) IndexOf(id int64) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.tracks {
		if c.tracks[i].ID == id {
			return i
		}
	}
	return -1
}

// Tracks возвращает копию текущего снимка
func (c *Catalog) Tracks() []store.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]store.Track, len(c.tracks))
	copy(result, c.tracks)
	return result
}
