package middleware

import (
	"net/http"

	"github.com/MosinFAM/grams/internal/errs"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ErrorHandler - единая точка, где ошибки обработчиков превращаются в ответ.
// Ошибка аутентификации даёт редирект на страницу входа, остальные - JSON со статусом.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		originalErr := c.Errors.Last().Err

		var httpErr *errs.HTTPError
		if !errors.As(originalErr, &httpErr) {
			httpErr = errs.NewInternalServerError()
		}

		logger := GetLogger(c)
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error().Err(originalErr).Str("error_code", httpErr.Code).Msg(httpErr.Message)
		} else {
			logger.Debug().Err(originalErr).Int("status", httpErr.Status).Str("error_code", httpErr.Code).Msg(httpErr.Message)
		}

		if c.Writer.Written() {
			return
		}
		if location, ok := httpErr.Redirect(); ok {
			c.Redirect(http.StatusFound, location)
			return
		}
		c.JSON(httpErr.Status, httpErr)
	}
}
