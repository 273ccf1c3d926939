package log

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// New builds the process logger: JSON to the log file, pretty console
// output alongside it when withConsole is set.
func New(logFilePath string, withConsole bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var writer io.Writer = os.Stdout
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err == nil {
		writer = logFile
		if withConsole {
			console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
			writer = zerolog.MultiLevelWriter(logFile, console)
		}
	}

	return zerolog.New(writer).With().Timestamp().Logger()
}

// WithRequest returns the logger enriched with request-scoped fields so
// handler log lines can be correlated with the access log.
func WithRequest(l zerolog.Logger, c *fiber.Ctx) zerolog.Logger {
	builder := l.With().
		Str("ip", c.IP()).
		Str("method", c.Method()).
		Str("path", c.Path())
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		builder = builder.Str("req_id", rid)
	}
	return builder.Logger()
}
