package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hookshield/hookshield/internal/constants"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogRotationConfig holds configuration for hook log rotation.
type LogRotationConfig struct {
	MaxAge     int  `json:"maxAge,omitempty"`     // days to retain log files
	MaxSize    int  `json:"maxSize,omitempty"`    // megabytes before rotation
	MaxBackups int  `json:"maxBackups,omitempty"` // rotated files to retain
	Compress   bool `json:"compress,omitempty"`   // gzip rotated files
}

// DefaultLogRotationConfig returns sensible defaults for log rotation.
func DefaultLogRotationConfig() LogRotationConfig {
	return LogRotationConfig{
		MaxAge:     30,
		MaxSize:    10,
		MaxBackups: 5,
		Compress:   true,
	}
}

// GetLogRotationConfigFromFile gets log rotation config from the project
// config file, falling back to defaults on any load failure.
func GetLogRotationConfigFromFile(global bool) LogRotationConfig {
	configPath, err := GetProjectConfigPath(global)
	if err != nil {
		return DefaultLogRotationConfig()
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return DefaultLogRotationConfig()
	}
	if cfg.LogRotation.MaxAge == 0 && cfg.LogRotation.MaxSize == 0 {
		return DefaultLogRotationConfig()
	}
	return cfg.LogRotation
}

// SetupLogRotation configures log rotation for a given log file path.
func SetupLogRotation(logPath string, cfg LogRotationConfig) *lumberjack.Logger {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		log.Printf("Failed to create log directory: %v", err)
		return nil
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
}

// CleanupOldLogs removes log files older than maxAgeDays. This provides
// additional cleanup beyond lumberjack's built-in MaxAge.
func CleanupOldLogs(logDir string, maxAgeDays int) error {
	if maxAgeDays <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)

	return filepath.Walk(logDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".log" || filepath.Ext(path) == ".gz" {
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(path); err != nil {
					log.Printf("Failed to remove old log file %s: %v", path, err)
				}
			}
		}
		return nil
	})
}

// GetLogPath returns the standard log path for a given hook key.
func GetLogPath(hookKey string) string {
	return filepath.Join(constants.ClaudeDir, constants.HooksSubDir, fmt.Sprintf("%s.log", hookKey))
}

// Logging format constants
const (
	LoggingFormatJSONL  = "jsonl"
	LoggingFormatPretty = "pretty"
)

// IsValidLoggingFormat returns true if the provided format is supported.
func IsValidLoggingFormat(f string) bool {
	return f == LoggingFormatJSONL || f == LoggingFormatPretty
}
