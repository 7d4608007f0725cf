package runtime

import (
	"context"
	"log/slog"
	"strings"
)

// LogWriter is an io.Writer that redirects line-oriented output, like the
// HTTP access log, to a slog.Logger.
type LogWriter struct {
	logger *slog.Logger
	source string
	level  slog.Level
}

func NewLogWriter(logger *slog.Logger, source string, level slog.Level) *LogWriter {
	return &LogWriter{logger: logger, source: source, level: level}
}

// Write logs every non-empty line of p as one entry tagged with the source.
func (w *LogWriter) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	for _, line := range strings.Split(string(p), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			w.logger.Log(context.Background(), w.level, line, "source", w.source)
		}
	}
	return len(p), nil
}
