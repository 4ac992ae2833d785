// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	DBPath string `yaml:"db_path"` // Путь к файлу базы данных библиотеки
}

const defaultDBPath = "~/.jukebox/library.db"

// LoadConfig загружает конфигурацию из указанного yaml-файла.
// Отсутствующий файл не считается ошибкой: используются значения по
// умолчанию. Переменная окружения JUKEBOX_DB_PATH (в том числе из .env)
// имеет приоритет над файлом.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("ошибка разбора yaml: %w", err)
		}
	}

	// Подхватываем .env, если он есть; ошибки игнорируем
	_ = godotenv.Load()

	if envPath := os.Getenv("JUKEBOX_DB_PATH"); envPath != "" {
		config.DBPath = envPath
	}

	// Устанавливаем значения по умолчанию, если они не заданы
	if config.DBPath == "" {
		config.DBPath = defaultDBPath
	}

	// Раскрываем тильду в пути к базе
	config.DBPath = strings.Replace(config.DBPath, "~", home, 1)

	return config, nil
}
