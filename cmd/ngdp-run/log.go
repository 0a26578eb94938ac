package main

import (
	"os"

	"github.com/phuslu/log"

	"github.com/chromedp/ngdp"
)

func newLogger(level string) log.Logger {
	return log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: "15:04:05.000",
		Writer: &log.ConsoleWriter{
			Writer:      os.Stderr,
			ColorOutput: true,
		},
	}
}

// logf returns a ngdp.LogFunc writing to l at level.
func logf(l *log.Logger, level log.Level) ngdp.LogFunc {
	return func(format string, v ...interface{}) {
		l.WithLevel(level).Msgf(format, v...)
	}
}
