package logger

import (
	"io"
	"os"
	"time"

	"github.com/MosinFAM/grams/internal/config"

	"github.com/rs/zerolog"
)

// New создаёт логгер приложения: JSON для продакшена, console для локальной разработки
func New(cfg config.LoggingConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

func NewWithWriter(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "grams").
		Logger()
}
