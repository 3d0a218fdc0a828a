// Package obslog builds the logrus logger the rest of networkmonitor
// is handed via constructor injection. No package-global logger is
// exposed; callers decide the sink.
package obslog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New parses level (logrus level names, e.g. "debug", "info", "warn")
// and returns a logger writing JSON lines to stderr. An unparseable
// level falls back to Info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
