package output

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

// NewLogger creates the diagnostic logger. Level "off" (or empty) discards everything.
func NewLogger(target io.Writer, level string, useColor bool) (*slog.Logger, error) {
	var leveler slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "off":
		return slog.New(slog.DiscardHandler), nil
	case "debug":
		leveler = slog.LevelDebug
	case "info":
		leveler = slog.LevelInfo
	case "warn", "warning":
		leveler = slog.LevelWarn
	case "error":
		leveler = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	handler := tint.NewHandler(target, &tint.Options{
		Level:      leveler,
		TimeFormat: "15:04:05.000",
		NoColor:    !useColor,
	})
	return slog.New(handler), nil
}
