package handler

import (
	"net/http"

	"github.com/MosinFAM/grams/internal/auth"
	"github.com/MosinFAM/grams/internal/service"

	"github.com/gin-gonic/gin"
)

type gramForm struct {
	Message string `form:"gram[message]" json:"message"`
}

// GramHandler - HTTP-ручки ресурса /grams
type GramHandler struct {
	grams    *service.Grams
	comments *service.Comments
}

func NewGramHandler(grams *service.Grams, comments *service.Comments) *GramHandler {
	return &GramHandler{grams: grams, comments: comments}
}

// Index - GET /grams
func (h *GramHandler) Index(c *gin.Context) {
	grams, err := h.grams.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grams": grams})
}

// New - GET /grams/new
func (h *GramHandler) New(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"gram": gramForm{}})
}

// Create - POST /grams
func (h *GramHandler) Create(c *gin.Context) {
	var form gramForm
	if !bind(c, &form) {
		return
	}
	if _, err := h.grams.Create(c.Request.Context(), auth.CurrentUser(c), form.Message); err != nil {
		_ = c.Error(err)
		return
	}
	redirectToRoot(c)
}

// Show - GET /grams/:id, вместе с первой страницей комментариев
func (h *GramHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	gram, err := h.grams.Get(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	comments, err := h.comments.List(ctx, gram.ID, service.DefaultCommentsLimit, 0)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gram": gram, "comments": comments})
}

// Edit - GET /grams/:id/edit
func (h *GramHandler) Edit(c *gin.Context) {
	gram, err := h.grams.Editable(c.Request.Context(), auth.CurrentUser(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gram": gram})
}

// Update - PATCH/PUT /grams/:id
func (h *GramHandler) Update(c *gin.Context) {
	var form gramForm
	if !bind(c, &form) {
		return
	}
	if _, err := h.grams.Update(c.Request.Context(), auth.CurrentUser(c), c.Param("id"), form.Message); err != nil {
		_ = c.Error(err)
		return
	}
	redirectToRoot(c)
}

// Destroy - DELETE /grams/:id
func (h *GramHandler) Destroy(c *gin.Context) {
	if err := h.grams.Destroy(c.Request.Context(), auth.CurrentUser(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	redirectToRoot(c)
}
