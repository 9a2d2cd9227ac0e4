package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var console, file bytes.Buffer
	l := New("world", &console, &file, INFO)

	l.Debug("отладка %d", 1)
	l.Info("инфо %d", 2)
	l.Error("ошибка %d", 3)

	assert.NotContains(t, console.String(), "отладка", "DEBUG не должен попадать в консоль")
	assert.Contains(t, console.String(), "[INFO] [world] инфо 2")
	assert.Contains(t, console.String(), "[ERROR] [world] ошибка 3")
	assert.Contains(t, file.String(), "[DEBUG] [world] отладка 1", "Файл получает все уровни")
}

func TestLogger_SetLevels(t *testing.T) {
	var console, file bytes.Buffer
	l := New("mesh", &console, &file, INFO)
	l.SetLevels(ERROR, WARN)

	l.Info("скрыто")
	l.Warn("предупреждение")

	assert.Empty(t, console.String())
	assert.Contains(t, file.String(), "предупреждение")
	assert.NotContains(t, file.String(), "скрыто")
}

func TestLogger_NilAndDiscardAreSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("ничего")
		l.SetLevels(TRACE, TRACE)
		assert.NoError(t, l.Close())
	})

	assert.NotPanics(t, func() {
		Discard().Error("тоже ничего")
	})
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestManager_CreatesFilePerComponent(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, ERROR)

	worldLogger, err := m.GetLogger("world")
	require.NoError(t, err)
	again, err := m.GetLogger("world")
	require.NoError(t, err)
	assert.Same(t, worldLogger, again, "Повторный запрос возвращает тот же логгер")

	m.MustGetLogger("storage").Info("открыто хранилище")
	assert.Equal(t, []string{"storage", "world"}, m.ListComponents())

	require.NoError(t, m.CloseAll())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	var storageLog string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "storage_") {
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NoError(t, err)
			storageLog = string(data)
		}
	}
	assert.Contains(t, storageLog, "открыто хранилище")
}

func TestManager_SetLogLevelUnknown(t *testing.T) {
	m := NewManager("", INFO)
	assert.Error(t, m.SetLogLevel("nope", INFO, INFO))
}

func TestHexDump(t *testing.T) {
	assert.Equal(t, "No data", HexDump(nil))
	dump := HexDump(bytes.Repeat([]byte{0xAB}, 300))
	assert.Equal(t, 16, strings.Count(dump, "\n"), "Дамп ограничен 256 байтами")
}
