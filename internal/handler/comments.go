package handler

import (
	"net/http"
	"strconv"

	"github.com/MosinFAM/grams/internal/auth"
	"github.com/MosinFAM/grams/internal/errs"
	"github.com/MosinFAM/grams/internal/service"

	"github.com/gin-gonic/gin"
)

type commentForm struct {
	Message string `form:"comment[message]" json:"message"`
}

// CommentHandler - HTTP-ручки ресурса /grams/:id/comments
type CommentHandler struct {
	comments *service.Comments
}

func NewCommentHandler(comments *service.Comments) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Create - POST /grams/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var form commentForm
	if !bind(c, &form) {
		return
	}
	if _, err := h.comments.Create(c.Request.Context(), auth.CurrentUser(c), c.Param("id"), form.Message); err != nil {
		_ = c.Error(err)
		return
	}
	redirectToRoot(c)
}

// Index - GET /grams/:id/comments?limit=&offset=
func (h *CommentHandler) Index(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultCommentsLimit)))
	if err != nil {
		_ = c.Error(errs.NewBadRequestError("limit must be an integer"))
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		_ = c.Error(errs.NewBadRequestError("offset must be an integer"))
		return
	}

	comments, err := h.comments.List(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "limit": limit, "offset": offset})
}
