package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger and returns it. An unknown
// level falls back to info; format is "json" (default) or "text".
func Setup(level, format string, out io.Writer) *logrus.Logger {
	logger := logrus.StandardLogger()
	if out != nil {
		logger.SetOutput(out)
	}

	switch format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
