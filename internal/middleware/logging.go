package middleware

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

const accessLogFormat = "${time} | ${status} | ${latency} | ${requestid} | ${method} | ${path}\n"

// Logging writes an access log line for every request to stderr.
func Logging() fiber.Handler {
	return LoggingTo(os.Stderr)
}

// LoggingTo works like Logging, but writes to output.
// Requests for the version endpoint are health checks and are not logged.
func LoggingTo(output io.Writer) fiber.Handler {
	return logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/version")
		},
		Format:        accessLogFormat,
		TimeFormat:    "2006-01-02 15:04:05",
		TimeZone:      "Local",
		Output:        output,
		DisableColors: true,
		CustomTags: map[string]logger.LogFunc{
			"latency": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				latency := float64(data.Stop.Sub(data.Start).Nanoseconds()) / float64(time.Millisecond)
				return fmt.Fprintf(output, "%6.1fms", latency)
			},
			"requestid": func(output logger.Buffer, c *fiber.Ctx, _ *logger.Data, _ string) (int, error) {
				return output.WriteString(GetRequestID(c))
			},
		},
	})
}
