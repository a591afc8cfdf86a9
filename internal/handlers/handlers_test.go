package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/myblog/backend/internal/middleware"
	"github.com/myblog/backend/internal/models"
	"github.com/myblog/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixed user set: 1=alice (user), 2=bob (user), 3=root (admin)
func handlerTestUsers() map[string]*models.User {
	return map[string]*models.User{
		"1": {ID: 1, Username: "alice", Role: models.RoleUser},
		"2": {ID: 2, Username: "bob", Role: models.RoleUser},
		"3": {ID: 3, Username: "root", Role: models.RoleAdmin},
	}
}

// mockAuthService implements AuthService
type mockAuthService struct{}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*services.TokenResponse, error) {
	if username == "alice" && password == "wonderland" {
		return &services.TokenResponse{AccessToken: "1", TokenType: "bearer"}, nil
	}
	return nil, models.ErrInvalidCredentials
}

// mockArticleService implements ArticleService over an in-memory map
type mockArticleService struct {
	users    map[string]*models.User
	articles map[int]*models.Article
	nextID   int
}

func newMockArticleService(articles ...*models.Article) *mockArticleService {
	m := &mockArticleService{users: handlerTestUsers(), articles: map[int]*models.Article{}, nextID: 1}
	for _, a := range articles {
		m.articles[a.ID] = a
		if a.ID >= m.nextID {
			m.nextID = a.ID + 1
		}
	}
	return m
}

func (m *mockArticleService) resolve(token string) (*models.User, error) {
	user, ok := m.users[token]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (m *mockArticleService) Create(ctx context.Context, userID int, patch *models.ArticlePatch) (*models.Article, error) {
	var user *models.User
	for _, u := range m.users {
		if u.ID == userID {
			user = u
		}
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}
	if patch.Title == nil {
		return nil, models.ErrTitleRequired
	}
	article := &models.Article{ID: m.nextID, Author: user.Username, Title: *patch.Title, CreatedAt: time.Now().UTC()}
	if patch.Body != nil {
		article.Body = *patch.Body
	}
	m.nextID++
	m.articles[article.ID] = article
	return article, nil
}

func (m *mockArticleService) Get(ctx context.Context, token string, articleID int) (*models.Article, error) {
	user, err := m.resolve(token)
	if err != nil {
		return nil, err
	}
	article, ok := m.articles[articleID]
	if !ok {
		return nil, models.ErrArticleNotFound
	}
	if article.Author != user.Username && !user.IsAdmin() {
		return nil, models.ErrForbidden
	}
	return article, nil
}

func (m *mockArticleService) List(ctx context.Context, token string) ([]models.Article, error) {
	user, err := m.resolve(token)
	if err != nil {
		return nil, err
	}
	result := []models.Article{}
	for _, article := range m.articles {
		if article.Author == user.Username || user.IsAdmin() {
			result = append(result, *article)
		}
	}
	return result, nil
}

func (m *mockArticleService) Update(ctx context.Context, token string, articleID int, patch *models.ArticlePatch) (*models.Article, error) {
	article, ok := m.articles[articleID]
	if !ok {
		return nil, models.ErrArticleNotFound
	}
	if patch.Title != nil {
		article.Title = *patch.Title
	}
	if patch.Body != nil {
		article.Body = *patch.Body
	}
	return article, nil
}

func (m *mockArticleService) Delete(ctx context.Context, token string, articleID int) error {
	if _, ok := m.articles[articleID]; !ok {
		return models.ErrArticleNotFound
	}
	delete(m.articles, articleID)
	return nil
}

// mockUserService implements UserService
type mockUserService struct {
	users map[string]*models.User
}

func (m *mockUserService) GetUser(ctx context.Context, token string, userID int) (*models.User, error) {
	caller, ok := m.users[token]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	if !caller.IsAdmin() {
		return nil, models.ErrForbidden
	}
	for _, user := range m.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserService) Me(ctx context.Context, token string) (*models.User, error) {
	user, ok := m.users[token]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

// setupTestRouter wires the handlers the way cmd/main.go does
func setupTestRouter(articleSvc *mockArticleService) chi.Router {
	logger := zap.NewNop()

	r := chi.NewRouter()
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.BearerTokenMiddleware)

	NewRootHandler(logger).RegisterRoutes(r)
	NewAuthHandler(&mockAuthService{}, logger).RegisterRoutes(r)
	NewArticleHandler(articleSvc, logger).RegisterRoutes(r)
	NewUserHandler(&mockUserService{users: handlerTestUsers()}, logger).RegisterRoutes(r)

	return r
}

func doRequest(t *testing.T, router chi.Router, method, path, token string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRootRoutes(t *testing.T) {
	router := setupTestRouter(newMockArticleService())

	rec := doRequest(t, router, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World !"}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/add?a=2&b=3", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":5}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/add?a=x&b=3", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginRoute(t *testing.T) {
	router := setupTestRouter(newMockArticleService())

	form := url.Values{"username": {"alice"}, "password": {"wonderland"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp services.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)

	// Wrong password: 401, no token issued
	form = url.Values{"username": {"alice"}, "password": {"nope"}}
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "access_token")
}

func TestCreateArticleRoute(t *testing.T) {
	router := setupTestRouter(newMockArticleService())

	// Author comes from user_id, never from the payload
	rec := doRequest(t, router, http.MethodPost, "/articles/?user_id=1&token=whatever", "", `{"title":"Hi","author":"mallory"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var article models.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	assert.Equal(t, "alice", article.Author)
	assert.Equal(t, "Hi", article.Title)
	assert.NotZero(t, article.ID)
	// An article without a body still carries the field on the wire
	assert.Contains(t, rec.Body.String(), `"body":""`)

	// Missing user_id
	rec = doRequest(t, router, http.MethodPost, "/articles/", "", `{"title":"Hi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Non-numeric user_id
	rec = doRequest(t, router, http.MethodPost, "/articles/?user_id=alice", "", `{"title":"Hi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing title
	rec = doRequest(t, router, http.MethodPost, "/articles/?user_id=1", "", `{"body":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown user
	rec = doRequest(t, router, http.MethodPost, "/articles/?user_id=999", "", `{"title":"Hi"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListArticlesRoute(t *testing.T) {
	router := setupTestRouter(newMockArticleService(
		&models.Article{ID: 1, Author: "alice", Title: "Hi"},
	))

	// No token: 401 before any resolution
	rec := doRequest(t, router, http.MethodGet, "/articles", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// bob sees nothing
	rec = doRequest(t, router, http.MethodGet, "/articles", "2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	// admin sees alice's article
	rec = doRequest(t, router, http.MethodGet, "/articles", "3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var articles []models.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	require.Len(t, articles, 1)
	assert.Equal(t, "alice", articles[0].Author)
}

func TestGetArticleRoute(t *testing.T) {
	router := setupTestRouter(newMockArticleService(
		&models.Article{ID: 1, Author: "alice", Title: "Hi"},
	))

	// Author reads own article
	rec := doRequest(t, router, http.MethodGet, "/articles/1", "1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Non-author, non-admin: 403
	rec = doRequest(t, router, http.MethodGet, "/articles/1", "2", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin: 200
	rec = doRequest(t, router, http.MethodGet, "/articles/1", "3", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Missing article: 404
	rec = doRequest(t, router, http.MethodGet, "/articles/999", "1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// No token: 401
	rec = doRequest(t, router, http.MethodGet, "/articles/1", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateArticleRoute(t *testing.T) {
	router := setupTestRouter(newMockArticleService(
		&models.Article{ID: 1, Author: "alice", Title: "Hi", Body: "original"},
	))

	// Partial patch: body survives a title-only update
	rec := doRequest(t, router, http.MethodPatch, "/articles/1", "", `{"title":"X"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var article models.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	assert.Equal(t, "X", article.Title)
	assert.Equal(t, "original", article.Body)

	// Missing article: 404
	rec = doRequest(t, router, http.MethodPatch, "/articles/999", "", `{"title":"X"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Malformed body: 400
	rec = doRequest(t, router, http.MethodPatch, "/articles/1", "", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteArticleRoute(t *testing.T) {
	router := setupTestRouter(newMockArticleService(
		&models.Article{ID: 1, Author: "alice", Title: "Hi"},
	))

	rec := doRequest(t, router, http.MethodDelete, "/articles/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":true}`, rec.Body.String())

	// Already gone: 404
	rec = doRequest(t, router, http.MethodDelete, "/articles/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserRoutes(t *testing.T) {
	router := setupTestRouter(newMockArticleService())

	// Admin reads a user
	rec := doRequest(t, router, http.MethodGet, "/users/1", "3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)
	// The stored password never serializes
	assert.NotContains(t, rec.Body.String(), "password")

	// Regular user: 403
	rec = doRequest(t, router, http.MethodGet, "/users/1", "1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin reads missing user: 404
	rec = doRequest(t, router, http.MethodGet, "/users/999", "3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// No token: 401
	rec = doRequest(t, router, http.MethodGet, "/users/1", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// /me resolves the caller
	rec = doRequest(t, router, http.MethodGet, "/me", "2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "bob", user.Username)

	// /me without token: 401
	rec = doRequest(t, router, http.MethodGet, "/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
