package ratel

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"

	"nts.lol/log"
	"nts.lol/lol"
)

// NewLogger creates a badger logger that forwards to lol at or below
// logLevel.
func NewLogger(logLevel int, label st) (l *logger) {
	log.T.Ln("getting logger for", label)
	l = &logger{Label: label}
	l.Level.Store(int32(logLevel))
	return
}

type logger struct {
	Level atomic.Int32
	Label st
}

// SetLogLevel atomically adjusts the log level to the given log level code.
func (l *logger) SetLogLevel(level int) { l.Level.Store(int32(level)) }

func (l *logger) print(level int32, printer lol.LevelPrinter, s st, i ...any) {
	if l.Level.Load() < level {
		return
	}
	txt := fmt.Sprintf(l.Label+": "+s, i...)
	_, file, line, _ := runtime.Caller(2)
	printer.F("%s\n%s:%d", strings.TrimSpace(txt), file, line)
}

func (l *logger) Errorf(s st, i ...any)   { l.print(lol.Error, log.E, s, i...) }
func (l *logger) Warningf(s st, i ...any) { l.print(lol.Warn, log.D, s, i...) }
func (l *logger) Infof(s st, i ...any)    { l.print(lol.Info, log.D, s, i...) }
func (l *logger) Debugf(s st, i ...any)   { l.print(lol.Debug, log.T, s, i...) }
