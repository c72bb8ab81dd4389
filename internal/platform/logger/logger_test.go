package logger

import (
	"log/slog"
	"testing"

	"github.com/shaxn3/WSTFinalProject/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name         string
		logLevel     string
		debugEnabled bool
	}{
		{name: "debug_level", logLevel: "debug", debugEnabled: true},
		{name: "info_level", logLevel: "info", debugEnabled: false},
		{name: "warn_level", logLevel: "warn", debugEnabled: false},
		{name: "error_level", logLevel: "error", debugEnabled: false},
		{name: "level_is_case_insensitive", logLevel: "DEBUG", debugEnabled: true},
		{name: "unknown_level_falls_back_to_info", logLevel: "chatty", debugEnabled: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.logLevel})

			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.Equal(t, tc.debugEnabled, logger.Enabled(nil, slog.LevelDebug))
			assert.True(t, logger.Enabled(nil, slog.LevelError))
		})
	}
}
