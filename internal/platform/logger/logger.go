package logger

import (
	"log/slog"
	"os"
)

// New returns the root structured logger. Services receive it via options and
// attach their own component attributes.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
