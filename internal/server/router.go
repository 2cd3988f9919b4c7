package server

import (
	"net/http"

	"github.com/MosinFAM/grams/internal/auth"
	"github.com/MosinFAM/grams/internal/handler"
	"github.com/MosinFAM/grams/internal/middleware"
	"github.com/MosinFAM/grams/internal/service"
	"github.com/MosinFAM/grams/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter собирает gin-движок со всеми ручками поверх выбранного хранилища
func NewRouter(store storage.Storage, sessions *auth.Sessions, logger zerolog.Logger) *gin.Engine {
	grams := service.NewGrams(store, logger)
	comments := service.NewComments(store, logger)
	accounts := service.NewAccounts(store, logger)

	gramHandler := handler.NewGramHandler(grams, comments)
	commentHandler := handler.NewCommentHandler(comments)
	sessionHandler := handler.NewSessionHandler(accounts, sessions)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gin.Recovery(),
		middleware.ErrorHandler(),
		sessions.Authenticate(),
	)

	r.GET("/", gramHandler.Index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireUser := auth.RequireUser()

	g := r.Group("/grams")
	g.GET("", gramHandler.Index)
	g.GET("/new", requireUser, gramHandler.New)
	g.POST("", requireUser, gramHandler.Create)
	g.GET("/:id", gramHandler.Show)
	g.GET("/:id/edit", requireUser, gramHandler.Edit)
	g.PATCH("/:id", requireUser, gramHandler.Update)
	g.PUT("/:id", requireUser, gramHandler.Update)
	g.DELETE("/:id", requireUser, gramHandler.Destroy)
	g.GET("/:id/comments", commentHandler.Index)
	g.POST("/:id/comments", requireUser, commentHandler.Create)

	u := r.Group("/users")
	u.GET("/sign_in", sessionHandler.SignInForm)
	u.POST("/sign_in", sessionHandler.SignIn)
	u.GET("/sign_up", sessionHandler.SignUpForm)
	u.POST("", sessionHandler.SignUp)
	u.DELETE("/sign_out", sessionHandler.SignOut)

	return r
}
