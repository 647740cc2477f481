package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// initLogger installs a text handler writing to stderr and, when logPath is
// not empty, also appending to logPath.
func initLogger(
	stderr io.Writer,
	logPath string,
	level slog.Level,
) (io.Closer, error) {
	w := stderr
	var closer io.Closer = io.NopCloser(nil)

	if logPath != "" {
		logFile, err := os.OpenFile(
			logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}

		w = io.MultiWriter(stderr, logFile)
		closer = logFile
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	return closer, nil
}
