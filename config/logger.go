package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. Unknown levels fall back to info.
func NewLogger(cfg Log) *logrus.Logger {
	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	var formatter logrus.Formatter = &logrus.TextFormatter{DisableLevelTruncation: true, FullTimestamp: true}
	if cfg.Format == "json" {
		formatter = &logrus.JSONFormatter{}
	}
	return &logrus.Logger{
		Out:       os.Stdout,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     lvl,
	}
}
