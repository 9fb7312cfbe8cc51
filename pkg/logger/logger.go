package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	base *logrus.Logger
	App  *logrus.Entry
	HTTP *logrus.Entry
}

func New(level string) *Logger {
	base := logrus.New()
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	return &Logger{
		base: base,
		App:  base.WithField("component", "app"),
		HTTP: base.WithField("component", "http"),
	}
}

// Sub returns a component-scoped entry, e.g. Sub("Catalog").
func (l *Logger) Sub(name string) *logrus.Entry {
	return l.base.WithField("component", name)
}

func InitForTests() *Logger {
	l := New("debug")
	l.base.SetOutput(io.Discard)
	return l
}
