// ABOUTME: Logrus setup: level plus a rotating lumberjack file or stderr.
// ABOUTME: Logs never go to stdout, which carries command output and MCP traffic.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Params selects where logs go.
type Params struct {
	Level string
	// File is a log file path, or "-" for stderr.
	File string
}

// Setup configures the standard logrus logger. The returned closer
// releases the log file; it is a no-op for stderr.
func Setup(p Params) io.Closer {
	logrus.SetLevel(GetLevel(p.Level))
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if p.File == "" || p.File == "-" {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}
	}

	if err := os.MkdirAll(filepath.Dir(p.File), 0750); err != nil {
		logrus.SetOutput(os.Stderr)
		logrus.WithError(err).Warn("cannot create log directory, logging to stderr")
		return nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   p.File,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
	logrus.SetOutput(lj)
	return lj
}

// GetLevel parses a level name; unknown names fall back to info.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
