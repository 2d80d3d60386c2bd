// Package logging routes logrus output to a dated file, since the terminal
// belongs to the UI while the player runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yhkl-dev/EaseCLI/config"
	"github.com/yhkl-dev/EaseCLI/where"
)

// Setup opens today's log file under dir and configures the standard logger.
// The returned closer flushes and closes the file.
func Setup(cfg config.LogConfig, dir string) (io.Closer, error) {
	if dir == "" {
		dir = where.Logs()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if cfg.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return f, nil
}

// For returns a logger scoped to one component
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
