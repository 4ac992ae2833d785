// Package metadata предоставляет функционал для извлечения метаданных из аудио файлов
package metadata

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/mp3"

	"github.com/hazadus/go-jukebox/internal/utils"
)

// Info хранит метаданные трека
type Info struct {
	Artist string
	Title  string
	Album  string
}

// Extractor извлекает метаданные из аудиоданных
type Extractor struct{}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor() *Extractor {
	return &Extractor{}
}

// IsAudio сообщает, является ли файл поддерживаемым аудио.
// Неподдерживаемые файлы пропускаются при импорте без ошибки.
func (e *Extractor) IsAudio(fileName string, payload []byte) bool {
	if len(payload) == 0 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	return ext == ".mp3"
}

// ExtractFromPayload извлекает метаданные из сохраненных аудиоданных.
// Если теги отсутствуют или не читаются, название берется из имени файла.
func (e *Extractor) ExtractFromPayload(fileName string, payload []byte) Info {
	meta, err := tag.ReadFrom(bytes.NewReader(payload))
	if err != nil {
		return e.defaultInfo(fileName)
	}

	info := Info{
		Artist: meta.Artist(),
		Title:  meta.Title(),
		Album:  meta.Album(),
	}
	if info.Title == "" {
		info.Title = utils.DisplayName(fileName)
	}
	return info
}

// Duration вычисляет длительность MP3 по его данным
func (e *Extractor) Duration(payload []byte) (time.Duration, error) {
	streamer, format, err := mp3.Decode(payloadReader{bytes.NewReader(payload)})
	if err != nil {
		return 0, fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

func (e *Extractor) defaultInfo(fileName string) Info {
	return Info{
		Artist: "Неизвестный исполнитель",
		Title:  utils.DisplayName(fileName),
		Album:  "Неизвестный альбом",
	}
}

// payloadReader оборачивает bytes.Reader в io.ReadSeekCloser для декодера
type payloadReader struct {
	*bytes.Reader
}

func (payloadReader) Close() error { return nil }
