package logger

import (
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"DEBUG":   zerolog.DebugLevel,
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		" ERROR ": zerolog.ErrorLevel,
		"FATAL":   zerolog.FatalLevel,
		"PANIC":   zerolog.PanicLevel,
		"INFO":    zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for input, expected := range cases {
		assert.Equal(t, expected, ParseLevel(input), "level %q", input)
	}
}

func TestNewLoggerUsesEnvLevel(t *testing.T) {
	t.Setenv("PRESCREEN_LOGLEVEL", LOG_LEVEL_ERROR)
	l := NewLogger("test")
	assert.Equal(t, zerolog.ErrorLevel, l.GetLevel())
}

func TestFileSinkWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prescreen.log")
	sink := newFileSink(FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	l := zerolog.New(sink)
	l.Info().Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
