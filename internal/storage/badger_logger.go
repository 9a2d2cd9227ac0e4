package storage

import (
	"fmt"
	"strings"

	"github.com/annel0/voxelcore/internal/logging"
)

// badgerLogger направляет сообщения BadgerDB в логгер компонента.
// Badger многословен, поэтому его INFO пишется как DEBUG.
type badgerLogger struct {
	l *logging.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error("badger: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn("badger: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug("badger: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Trace("badger: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}
