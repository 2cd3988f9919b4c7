package handler

import (
	"net/http"

	"github.com/MosinFAM/grams/internal/auth"
	"github.com/MosinFAM/grams/internal/service"

	"github.com/gin-gonic/gin"
)

type credentialsForm struct {
	Email    string `form:"user[email]" json:"email"`
	Password string `form:"user[password]" json:"password"`
}

// SessionHandler - регистрация, вход и выход
type SessionHandler struct {
	accounts *service.Accounts
	sessions *auth.Sessions
}

func NewSessionHandler(accounts *service.Accounts, sessions *auth.Sessions) *SessionHandler {
	return &SessionHandler{accounts: accounts, sessions: sessions}
}

// SignInForm - GET /users/sign_in
func (h *SessionHandler) SignInForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": gin.H{"email": ""}})
}

// SignIn - POST /users/sign_in
func (h *SessionHandler) SignIn(c *gin.Context) {
	var form credentialsForm
	if !bind(c, &form) {
		return
	}
	user, err := h.accounts.SignIn(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.sessions.Start(c, user); err != nil {
		_ = c.Error(err)
		return
	}
	redirectToRoot(c)
}

// SignUpForm - GET /users/sign_up
func (h *SessionHandler) SignUpForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": gin.H{"email": ""}})
}

// SignUp - POST /users
func (h *SessionHandler) SignUp(c *gin.Context) {
	var form credentialsForm
	if !bind(c, &form) {
		return
	}
	user, err := h.accounts.SignUp(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.sessions.Start(c, user); err != nil {
		_ = c.Error(err)
		return
	}
	redirectToRoot(c)
}

// SignOut - DELETE /users/sign_out
func (h *SessionHandler) SignOut(c *gin.Context) {
	h.sessions.End(c)
	redirectToRoot(c)
}
