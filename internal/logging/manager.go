package logging

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// Manager управляет логгерами разных компонентов, пишущими в одну директорию.
// Создаётся явно в точке входа и передаётся подсистемам.
type Manager struct {
	mu           sync.RWMutex
	dir          string
	consoleLevel LogLevel
	loggers      map[string]*Logger
}

// NewManager создаёт менеджер логгеров
func NewManager(dir string, consoleLevel LogLevel) *Manager {
	return &Manager{
		dir:          dir,
		consoleLevel: consoleLevel,
		loggers:      make(map[string]*Logger),
	}
}

// GetLogger возвращает логгер для компонента, создавая его при необходимости
func (m *Manager) GetLogger(component string) (*Logger, error) {
	m.mu.RLock()
	if logger, exists := m.loggers[component]; exists {
		m.mu.RUnlock()
		return logger, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Проверяем еще раз на случай гонки
	if logger, exists := m.loggers[component]; exists {
		return logger, nil
	}

	logger, err := NewLogger(m.dir, component, m.consoleLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger for %s: %w", component, err)
	}

	m.loggers[component] = logger
	return logger, nil
}

// MustGetLogger возвращает логгер или консольный fallback при ошибке
func (m *Manager) MustGetLogger(component string) *Logger {
	logger, err := m.GetLogger(component)
	if err != nil {
		fallback := New(component, os.Stderr, nil, m.consoleLevel)
		fallback.Warn("логгер с файлом недоступен: %v", err)
		return fallback
	}
	return logger
}

// SetLogLevel устанавливает уровни логирования для компонента
func (m *Manager) SetLogLevel(component string, consoleLevel, fileLevel LogLevel) error {
	m.mu.RLock()
	logger, exists := m.loggers[component]
	m.mu.RUnlock()

	if !exists {
		return fmt.Errorf("logger for component %s not found", component)
	}

	logger.SetLevels(consoleLevel, fileLevel)
	return nil
}

// ListComponents возвращает отсортированный список зарегистрированных компонентов
func (m *Manager) ListComponents() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	components := make([]string, 0, len(m.loggers))
	for component := range m.loggers {
		components = append(components, component)
	}
	sort.Strings(components)
	return components
}

// CloseAll закрывает все логгеры
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for component, logger := range m.loggers {
		if err := logger.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close logger for %s: %w", component, err)
		}
	}

	m.loggers = make(map[string]*Logger)
	return lastErr
}
