package config

import (
	log "github.com/sirupsen/logrus"
)

// ApplyLogging configures the process-wide logrus logger from LogConfig.
// Unknown levels fall back to info.
func ApplyLogging(cfg *LogConfig) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
