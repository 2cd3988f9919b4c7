package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MosinFAM/grams/internal/auth"
	"github.com/MosinFAM/grams/internal/config"
	"github.com/MosinFAM/grams/internal/errs"
	"github.com/MosinFAM/grams/internal/models"
	"github.com/MosinFAM/grams/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testApp struct {
	handler  http.Handler
	store    *storage.MemoryStorage
	sessions *auth.Sessions
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Auth.SecretKey = testSecret

	srv, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)

	store, ok := srv.store.(*storage.MemoryStorage)
	require.True(t, ok)

	return &testApp{
		handler:  srv.Handler(),
		store:    store,
		sessions: auth.NewSessions(testSecret, cfg.Auth.TokenTTL, store, zerolog.Nop()),
	}
}

func (a *testApp) user(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := a.store.AddUser(context.Background(), email, "hash")
	require.NoError(t, err)
	return &user
}

func (a *testApp) gram(t *testing.T, owner *models.User, message string) models.Gram {
	t.Helper()
	gram, err := a.store.AddGram(context.Background(), owner.ID, message)
	require.NoError(t, err)
	return gram
}

func (a *testApp) grams(t *testing.T) []models.Gram {
	t.Helper()
	grams, err := a.store.GetAllGrams(context.Background())
	require.NoError(t, err)
	return grams
}

func (a *testApp) reload(t *testing.T, id string) *models.Gram {
	t.Helper()
	gram, err := a.store.GetGramByID(context.Background(), id)
	require.NoError(t, err)
	return gram
}

// do отправляет форму от имени user; nil - анонимный запрос
func (a *testApp) do(t *testing.T, method, path string, form url.Values, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if user != nil {
		token, err := a.sessions.Issue(user.ID)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func gramForm(message string) url.Values {
	return url.Values{"gram[message]": {message}}
}

func commentForm(message string) url.Values {
	return url.Values{"comment[message]": {message}}
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, location, w.Header().Get("Location"))
}

func TestIndex(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner@example.com")

	w := app.do(t, http.MethodGet, "/grams", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	app.gram(t, owner, "first")
	app.gram(t, owner, "second")

	w = app.do(t, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Grams []models.Gram `json:"grams"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Grams, 2)
	assert.Equal(t, "first", body.Grams[0].Message)
}

func TestNew(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/grams/new", nil, nil)
	assertRedirect(t, w, errs.SignInPath)

	w = app.do(t, http.MethodGet, "/grams/new", nil, app.user(t, "jane@example.com"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreate(t *testing.T) {
	app := newTestApp(t)
	user := app.user(t, "jane@example.com")

	w := app.do(t, http.MethodPost, "/grams", gramForm("Hello!"), user)
	assertRedirect(t, w, "/")

	grams := app.grams(t)
	require.Len(t, grams, 1)
	last := grams[len(grams)-1]
	assert.Equal(t, "Hello!", last.Message)
	assert.Equal(t, user.ID, last.OwnerID)
}

func TestCreate_JSON(t *testing.T) {
	app := newTestApp(t)
	user := app.user(t, "jane@example.com")
	token, err := app.sessions.Issue(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/grams", strings.NewReader(`{"message":"from json"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)

	assertRedirect(t, w, "/")
	assert.Equal(t, "from json", app.grams(t)[0].Message)
}

func TestCreate_ValidationError(t *testing.T) {
	app := newTestApp(t)
	user := app.user(t, "jane@example.com")

	for _, message := range []string{"", "   ", strings.Repeat("a", 2001)} {
		w := app.do(t, http.MethodPost, "/grams", gramForm(message), user)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	}
	assert.Empty(t, app.grams(t))
}

func TestCreate_NotAuthenticated(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/grams", gramForm("Hello"), nil)

	assertRedirect(t, w, errs.SignInPath)
	assert.Empty(t, app.grams(t))
}

func TestShow(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner@example.com")
	gram := app.gram(t, owner, "Hello!")

	w := app.do(t, http.MethodGet, "/grams/"+gram.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Gram     models.Gram       `json:"gram"`
		Comments []*models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, gram.ID, body.Gram.ID)
	assert.Empty(t, body.Comments)

	w = app.do(t, http.MethodGet, "/grams/TACOCAT", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEdit(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner@example.com")
	stranger := app.user(t, "stranger@example.com")
	gram := app.gram(t, owner, "Hello!")

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/grams/"+gram.ID+"/edit", nil, owner).Code)
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, "/grams/"+gram.ID+"/edit", nil, stranger).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/grams/NILHOUSE/edit", nil, owner).Code)

	assertRedirect(t, app.do(t, http.MethodGet, "/grams/"+gram.ID+"/edit", nil, nil), errs.SignInPath)
}

func TestUpdate(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner@example.com")
	gram := app.gram(t, owner, "Initial Value")

	w := app.do(t, http.MethodPatch, "/grams/"+gram.ID, gramForm("Changed"), owner)

	assertRedirect(t, w, "/")
	assert.Equal(t, "Changed", app.reload(t, gram.ID).Message)
}

func TestUpdate_Failures(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner@example.com")
	stranger := app.user(t, "stranger@example.com")
	gram := app.gram(t, owner, "Initial Value")

	tests := []struct {
		name    string
		id      string
		message string
		user    *models.User
		status  int
	}{
		{name: "not found", id: "YOLOSWAG", message: "Changed", user: owner, status: http.StatusNotFound},
		{name: "empty message", id: gram.ID, message: "", user: owner, status: http.StatusUnprocessableEntity},
		{name: "not owner", id: gram.ID, message: "Changed", user: stranger, status: http.StatusForbidden},
		{name: "anonymous", id: gram.ID, message: "Changed", user: nil, status: http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, http.MethodPatch, "/grams/"+tt.id, gramForm(tt.message), tt.user)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "Initial Value", app.reload(t, gram.ID).Message)
		})
	}
}

func TestUpdate_MethodOverride(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner@example.com")
	gram := app.gram(t, owner, "Initial Value")

	form := gramForm("Changed")
	form.Set("_method", "patch")
	w := app.do(t, http.MethodPost, "/grams/"+gram.ID, form, owner)

	assertRedirect(t, w, "/")
	assert.Equal(t, "Changed", app.reload(t, gram.ID).Message)
}

func TestDestroy(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner@example.com")
	gram := app.gram(t, owner, "Hello!")

	w := app.do(t, http.MethodDelete, "/grams/"+gram.ID, nil, owner)
	assertRedirect(t, w, "/")

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/grams/"+gram.ID, nil, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodDelete, "/grams/"+gram.ID, nil, owner).Code)
}

func TestDestroy_Failures(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner@example.com")
	stranger := app.user(t, "stranger@example.com")
	gram := app.gram(t, owner, "Hello!")

	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodDelete, "/grams/"+gram.ID, nil, stranger).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodDelete, "/grams/TACOCAT", nil, owner).Code)
	assertRedirect(t, app.do(t, http.MethodDelete, "/grams/"+gram.ID, nil, nil), errs.SignInPath)

	assert.Len(t, app.grams(t), 1)
}

func TestNotAuthenticated_BeforeExistence(t *testing.T) {
	app := newTestApp(t)

	for _, tt := range []struct{ method, path string }{
		{http.MethodGet, "/grams/missing/edit"},
		{http.MethodPatch, "/grams/missing"},
		{http.MethodDelete, "/grams/missing"},
		{http.MethodPost, "/grams/missing/comments"},
	} {
		assertRedirect(t, app.do(t, tt.method, tt.path, nil, nil), errs.SignInPath)
	}
}

func TestCommentCreate(t *testing.T) {
	app := newTestApp(t)
	p := app.gram(t, app.user(t, "owner@example.com"), "Hello!")
	user := app.user(t, "commenter@example.com")

	w := app.do(t, http.MethodPost, "/grams/"+p.ID+"/comments", commentForm("awesome gram"), user)
	assertRedirect(t, w, "/")

	comments, err := app.store.GetCommentsByGramID(context.Background(), p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "awesome gram", comments[0].Message)
	assert.Equal(t, user.ID, comments[0].AuthorID)
}

func TestCommentCreate_NotAuthenticated(t *testing.T) {
	app := newTestApp(t)
	p := app.gram(t, app.user(t, "owner@example.com"), "Hello!")

	w := app.do(t, http.MethodPost, "/grams/"+p.ID+"/comments", commentForm("awesome gram"), nil)
	assertRedirect(t, w, errs.SignInPath)

	comments, err := app.store.GetCommentsByGramID(context.Background(), p.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentCreate_GramNotFound(t *testing.T) {
	app := newTestApp(t)
	u := app.user(t, "jane@example.com")

	w := app.do(t, http.MethodPost, "/grams/YOLOGSWAG/comments", commentForm("awesome gram"), u)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentIndex(t *testing.T) {
	app := newTestApp(t)
	user := app.user(t, "owner@example.com")
	p := app.gram(t, user, "Hello!")
	for _, message := range []string{"one", "two", "three"} {
		_, err := app.store.AddComment(context.Background(), p.ID, user.ID, message)
		require.NoError(t, err)
	}

	w := app.do(t, http.MethodGet, "/grams/"+p.ID+"/comments?limit=2&offset=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Comments []models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Comments, 2)
	assert.Equal(t, "two", body.Comments[0].Message)
	assert.Equal(t, "three", body.Comments[1].Message)

	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/grams/"+p.ID+"/comments?limit=abc", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/grams/"+p.ID+"/comments?limit=1000", nil, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/grams/YOLOGSWAG/comments", nil, nil).Code)
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			return cookie
		}
	}
	return nil
}

func TestSignUpSignInSignOut(t *testing.T) {
	app := newTestApp(t)
	credentials := url.Values{"user[email]": {"jane@example.com"}, "user[password]": {"secret123"}}

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/users/sign_up", nil, nil).Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, errs.SignInPath, nil, nil).Code)

	w := app.do(t, http.MethodPost, "/users", credentials, nil)
	assertRedirect(t, w, "/")
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)

	// Cookie из регистрации сразу открывает защищённые страницы
	req := httptest.NewRequest(http.MethodGet, "/grams/new", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	app.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/users", credentials, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = app.do(t, http.MethodPost, errs.SignInPath, url.Values{"user[email]": {"jane@example.com"}, "user[password]": {"wrong"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))

	w = app.do(t, http.MethodPost, errs.SignInPath, credentials, nil)
	assertRedirect(t, w, "/")
	require.NotNil(t, sessionCookie(w))

	w = app.do(t, http.MethodDelete, "/users/sign_out", nil, nil)
	assertRedirect(t, w, "/")
	cleared := sessionCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
