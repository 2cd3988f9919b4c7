package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/MosinFAM/grams/internal/errs"
	"github.com/MosinFAM/grams/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// CookieName - cookie, в которой хранится токен сессии
	CookieName = "grams_session"

	currentUserKey = "current_user"
	issuer         = "grams"
)

// UserFinder - то, что нужно сессиям от хранилища
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Claims - данные внутри токена сессии
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Sessions выдаёт и проверяет токены сессий (HS256)
type Sessions struct {
	secret []byte
	ttl    time.Duration
	users  UserFinder
	logger zerolog.Logger
}

func NewSessions(secret string, ttl time.Duration, users UserFinder, logger zerolog.Logger) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
		users:  users,
		logger: logger.With().Str("component", "sessions").Logger(),
	}
}

// Issue подписывает токен для пользователя
func (s *Sessions) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return token, errors.Wrap(err, "sign session token")
}

// Parse проверяет подпись, алгоритм и срок действия токена
func (s *Sessions) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Start выдаёт токен и кладёт его в cookie
func (s *Sessions) Start(c *gin.Context, user *models.User) error {
	token, err := s.Issue(user.ID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(s.ttl.Seconds()), "/", "", false, true)
	return nil
}

// End удаляет cookie сессии
func (s *Sessions) End(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// Authenticate определяет текущего пользователя по cookie или заголовку Authorization.
// Невалидный токен означает анонимный запрос, а не ошибку.
func (s *Sessions) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if user, err := s.resolve(c.Request.Context(), tokenString); err != nil {
				s.logger.Debug().Err(err).Msg("session rejected")
			} else {
				c.Set(currentUserKey, user)
			}
		}
		c.Next()
	}
}

func (s *Sessions) resolve(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, claims.UserID)
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	token, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return token
}

// CurrentUser возвращает текущего пользователя или nil
func CurrentUser(c *gin.Context) *models.User {
	if user, ok := c.Get(currentUserKey); ok {
		if u, ok := user.(*models.User); ok {
			return u
		}
	}
	return nil
}

// RequireUser отправляет анонимные запросы на страницу входа
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			_ = c.Error(errs.NewNotAuthenticatedError())
			c.Abort()
			return
		}
		c.Next()
	}
}
