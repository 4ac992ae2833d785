// Package entitlement содержит проверку лимита библиотеки и активацию Pro-режима
package entitlement

import (
	"fmt"
	"os"
)

const (
	// FreeLimit - максимальное количество треков на бесплатном тарифе
	FreeLimit = 10
	// proCode - статический код активации. Проверка намеренно локальная,
	// без сервера: это переключатель тарифа, а не граница безопасности.
	proCode = "DEMOPRO2025"
	// EnvKey - переменная окружения для одноразовой активации при запуске
	EnvKey = "JUKEBOX_PRO_KEY"
)

// Flag описывает долговременное хранение флага Pro-режима
type Flag interface {
	IsPro() (bool, error)
	SetPro() error
}

// CanAdd сообщает, разрешено ли добавить addCount треков к currentCount
// существующим. В Pro-режиме ограничений нет.
func CanAdd(currentCount, addCount int, isPro bool) bool {
	if isPro {
		return true
	}
	return currentCount+addCount <= FreeLimit
}

// Gate управляет тарифом: хранит текущее состояние и проводит активацию
type Gate struct {
	flag  Flag
	isPro bool
}

// NewGate создает Gate, восстанавливая сохраненное состояние тарифа
func NewGate(flag Flag) (*Gate, error) {
	isPro, err := flag.IsPro()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения состояния тарифа: %w", err)
	}
	return &Gate{flag: flag, isPro: isPro}, nil
}

// IsPro возвращает текущий тариф
func (g *Gate) IsPro() bool {
	return g.isPro
}

// CanAdd проверяет лимит для текущего тарифа
func (g *Gate) CanAdd(currentCount, addCount int) bool {
	return CanAdd(currentCount, addCount, g.isPro)
}

// TryActivate сравнивает код с эталонным и при совпадении включает
// и сохраняет Pro-режим. Возврата на бесплатный тариф не существует.
func (g *Gate) TryActivate(code string) (bool, error) {
	if code != proCode {
		return false, nil
	}
	if err := g.flag.SetPro(); err != nil {
		return false, fmt.Errorf("ошибка сохранения Pro-режима: %w", err)
	}
	g.isPro = true
	return true, nil
}

// ActivateFromEnv выполняет одноразовую активацию по переменной окружения.
// После успешной активации переменная удаляется из окружения процесса,
// чтобы код не сработал повторно и не утек в дочерние процессы.
func (g *Gate) ActivateFromEnv() (bool, error) {
	code := os.Getenv(EnvKey)
	if code == "" {
		return false, nil
	}

	ok, err := g.TryActivate(code)
	if err != nil {
		return false, err
	}
	if ok {
		if err := os.Unsetenv(EnvKey); err != nil {
			return true, fmt.Errorf("ошибка очистки переменной окружения: %w", err)
		}
	}
	return ok, nil
}
