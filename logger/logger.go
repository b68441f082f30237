package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

const projectName = "choreo"

var (
	once          sync.Once
	projectLogger *logrus.Logger
)

// GetProjectLogger returns the logger shared by every package in the project.
func GetProjectLogger() *logrus.Entry {
	once.Do(func() {
		projectLogger = logrus.New()
		projectLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		projectLogger.SetLevel(logrus.InfoLevel)
	})
	return projectLogger.WithField("name", projectName)
}

// SetLevel parses a logrus level name ("debug", "info", ...) and applies it to the project logger.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	GetProjectLogger().Logger.SetLevel(lvl)
	return nil
}

// SetOutput redirects the project logger. The TUI points it at a file so log lines don't tear the screen.
func SetOutput(w io.Writer) {
	GetProjectLogger().Logger.SetOutput(w)
}
