package logging

import (
	"log/slog"
	"os"
)

// Setup installs the stdout JSON handler as the default logger. It runs
// before config loads so even boot failures come out structured; main
// swaps in the fan-out handler once the database is up.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
