// Package importer предоставляет функционал загрузки файлов в библиотеку
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hazadus/go-jukebox/internal/catalog"
	"github.com/hazadus/go-jukebox/internal/entitlement"
	"github.com/hazadus/go-jukebox/internal/metadata"
	"github.com/hazadus/go-jukebox/internal/store"
)

// ErrLimitReached возвращается, когда добавление превысило бы лимит
// бесплатного тарифа. Хранилище при этом не изменяется.
var ErrLimitReached = fmt.Errorf("лимит в %d бесплатных треков исчерпан", entitlement.FreeLimit)

// Result содержит итог импорта
type Result struct {
	Added   int     // Сколько треков сохранено
	Skipped int     // Сколько файлов пропущено (не аудио или ошибка чтения)
	IDs     []int64 // Идентификаторы добавленных треков
}

// Service управляет процессом импорта файлов в библиотеку
type Service struct {
	store     *store.Store
	catalog   *catalog.Catalog
	gate      *entitlement.Gate
	extractor *metadata.Extractor
}

// NewService создает новый сервис импорта
func NewService(st *store.Store, cat *catalog.Catalog, gate *entitlement.Gate) *Service {
	return &Service{
		store:     st,
		catalog:   cat,
		gate:      gate,
		extractor: metadata.NewExtractor(),
	}
}

// ImportFiles сохраняет указанные файлы в библиотеку.
// Лимит тарифа проверяется по общему числу переданных файлов до каких-либо
// изменений хранилища. Файлы, не являющиеся аудио, пропускаются молча и не
// попадают в счетчик успешных. После импорта каталог обновляется.
func (s *Service) ImportFiles(paths []string) (*Result, error) {
	if len(paths) == 0 {
		return &Result{}, nil
	}

	if !s.gate.CanAdd(s.catalog.Len(), len(paths)) {
		return nil, ErrLimitReached
	}

	result := &Result{}
	for _, path := range paths {
		payload, err := os.ReadFile(path)
		if err != nil {
			result.Skipped++
			continue
		}

		name := filepath.Base(path)
		if !s.extractor.IsAudio(name, payload) {
			result.Skipped++
			continue
		}

		id, err := s.store.Add(name, payload)
		if err != nil {
			// Неудавшаяся запись оставляет хранилище без изменений,
			// повторных попыток не делаем
			if errors.Is(err, store.ErrWrite) {
				result.Skipped++
				continue
			}
			return nil, err
		}

		result.Added++
		result.IDs = append(result.IDs, id)
	}

	// Обновляем каталог синхронно, до любых зависимых чтений
	if err := s.catalog.Refresh(s.store); err != nil {
		return nil, err
	}
	return result, nil
}
