package btbb

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface used by Codec.
type Logger interface {
	Info(...interface{})
	Debug(...interface{})
	Error(...interface{})
	Warn(...interface{})

	Infof(string, ...interface{})
	Debugf(string, ...interface{})
	Errorf(string, ...interface{})
	Warnf(string, ...interface{})

	ChildLogger(tags map[string]interface{}) Logger
}

var logger Logger
var loggerMu sync.Mutex

// SetLogLevel sets the level of the default logger, e.g. "debug".
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	if lg, ok := GetLogger().(*defaultLogger); ok {
		lg.Entry.Logger.SetLevel(lvl)
		return nil
	}
	GetLogger().Warn("non-default logger, level not changed")
	return nil
}

func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func GetLogger() Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if logger == nil {
		logger = NewLogger(os.Stderr, logrus.InfoLevel)
	}

	return logger
}

type defaultLogger struct {
	*logrus.Entry
}

// NewLogger returns a logrus backed Logger writing text lines to out.
func NewLogger(out io.Writer, level logrus.Level) Logger {
	l := &logrus.Logger{
		Formatter: &logrus.TextFormatter{DisableTimestamp: true},
		Level:     level,
		Out:       out,
		Hooks:     make(logrus.LevelHooks),
	}

	return &defaultLogger{Entry: logrus.NewEntry(l)}
}

func (d *defaultLogger) ChildLogger(ff map[string]interface{}) Logger {
	return &defaultLogger{d.Entry.WithFields(ff)}
}
