package handler

import (
	"net/http"

	"github.com/MosinFAM/grams/internal/errs"

	"github.com/gin-gonic/gin"
)

// RootPath - куда возвращаемся после успешных изменений
const RootPath = "/"

// bind разбирает тело запроса: JSON по json-тегам, формы по Rails-ключам из form-тегов
func bind(c *gin.Context, payload any) bool {
	if err := c.ShouldBind(payload); err != nil {
		_ = c.Error(errs.NewBadRequestError("Malformed request body"))
		return false
	}
	return true
}

func redirectToRoot(c *gin.Context) {
	c.Redirect(http.StatusFound, RootPath)
}
