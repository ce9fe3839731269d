package logger

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"os"
	"strings"
	"sync"
)

const (
	LOG_LEVEL_DEBUG = "DEBUG"
	LOG_LEVEL_INFO  = "INFO"
	LOG_LEVEL_WARN  = "WARN"
	LOG_LEVEL_ERROR = "ERROR"
	LOG_LEVEL_FATAL = "FATAL"
	LOG_LEVEL_PANIC = "PANIC"
)

// FileConfig enables a rotating file sink next to stderr.
type FileConfig struct {
	Path       string `envconfig:"PRESCREEN_LOG_FILE" default:""`
	MaxSizeMB  int    `envconfig:"PRESCREEN_LOG_FILE_MAX_SIZE_MB" default:"50"`
	MaxBackups int    `envconfig:"PRESCREEN_LOG_FILE_MAX_BACKUPS" default:"5"`
	MaxAgeDays int    `envconfig:"PRESCREEN_LOG_FILE_MAX_AGE_DAYS" default:"28"`
}

var (
	outputOnce sync.Once
	output     io.Writer = os.Stderr
)

func SetupLogging() {
	zerolog.LevelFieldName = "level_name"
	zerolog.TimestampFieldName = "timestamp"
}

func NewLogger(component string) zerolog.Logger {
	level, ok := os.LookupEnv("PRESCREEN_LOGLEVEL")
	if !ok {
		level = LOG_LEVEL_INFO
	}

	logger := zerolog.New(getOutput()).
		With().
		Str("component", component).
		Timestamp().
		Logger().
		Level(ParseLevel(level))

	return logger
}

func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LOG_LEVEL_DEBUG:
		return zerolog.DebugLevel
	case LOG_LEVEL_WARN:
		return zerolog.WarnLevel
	case LOG_LEVEL_ERROR:
		return zerolog.ErrorLevel
	case LOG_LEVEL_FATAL:
		return zerolog.FatalLevel
	case LOG_LEVEL_PANIC:
		return zerolog.PanicLevel
	}
	return zerolog.InfoLevel
}

func getOutput() io.Writer {
	outputOnce.Do(func() {
		var cfg FileConfig
		if err := envconfig.Process("", &cfg); err != nil || cfg.Path == "" {
			return
		}
		output = io.MultiWriter(os.Stderr, newFileSink(cfg))
	})
	return output
}

func newFileSink(cfg FileConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
}
