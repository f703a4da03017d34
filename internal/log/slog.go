package log

import (
	"io"
	"log/slog"
)

// SetVerbose installs the default slog logger writing text to w. Verbose
// output includes debug records; otherwise only warnings and errors appear.
func SetVerbose(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
