package middleware

import (
	"time"

	"github.com/MosinFAM/grams/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const LoggerKey = "logger"

// RequestLogger кладёт в контекст логгер с request_id и пишет одну строку на запрос.
// Уровень зависит от итогового статуса: 5xx - error, 4xx - warn.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		logger := base.With().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Set(LoggerKey, &logger)

		c.Next()

		status := c.Writer.Status()
		var e *zerolog.Event
		switch {
		case status >= 500:
			e = logger.Error()
		case status >= 400:
			e = logger.Warn()
		default:
			e = logger.Info()
		}

		if user := auth.CurrentUser(c); user != nil {
			e = e.Str("user_id", user.ID)
		}
		if location := c.Writer.Header().Get("Location"); location != "" {
			e = e.Str("location", location)
		}

		e.Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("API")
	}
}

// GetLogger возвращает логгер запроса; вне RequestLogger - пустой логгер
func GetLogger(c *gin.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey); ok {
		if l, ok := logger.(*zerolog.Logger); ok {
			return l
		}
	}
	nop := zerolog.Nop()
	return &nop
}
