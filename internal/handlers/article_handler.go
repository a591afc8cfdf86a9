package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/myblog/backend/internal/middleware"
	"github.com/myblog/backend/internal/models"
	"go.uber.org/zap"
)

// ArticleService is the interface that wraps methods for article business logic.
type ArticleService interface {
	// Method Create stores a new article authored by the user the id
	// resolves to. The author field is never taken from the draft.
	Create(ctx context.Context, userID int, patch *models.ArticlePatch) (*models.Article, error)
	// Method Get retrieves one article, permitted iff the caller is an
	// admin or the article's author.
	Get(ctx context.Context, token string, articleID int) (*models.Article, error)
	// Method List retrieves the articles visible to the caller.
	List(ctx context.Context, token string) ([]models.Article, error)
	// Method Update applies a partial update and returns the updated article.
	Update(ctx context.Context, token string, articleID int, patch *models.ArticlePatch) (*models.Article, error)
	// Method Delete removes an article by id.
	Delete(ctx context.Context, token string, articleID int) error
}

// ArticleHandler handles article HTTP requests
type ArticleHandler struct {
	BaseHandler
	articleService ArticleService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService ArticleService, logger *zap.Logger) *ArticleHandler {
	return &ArticleHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		articleService: articleService,
	}
}

// RegisterRoutes registers all article handler routes
func (h *ArticleHandler) RegisterRoutes(r chi.Router) {
	r.Route("/articles", func(r chi.Router) {
		r.Post("/", h.Create)
		r.With(middleware.RequireToken).Get("/", h.List)
		r.Route("/{id}", func(r chi.Router) {
			r.With(middleware.RequireToken).Get("/", h.Get)
			r.Patch("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

// Create handles POST /articles/
// @Summary Create an article
// @Description Create a new article. The author is the user identified by the user_id query parameter; any author field in the payload is ignored.
// @Tags articles
// @Accept json
// @Produce json
// @Param user_id query int true "Creating user id"
// @Param token query string false "Legacy token parameter (unused)"
// @Param article body models.ArticlePatch true "Article draft; title is required"
// @Success 200 {object} models.Article "Created article"
// @Failure 400 {object} map[string]string "Missing title or malformed body"
// @Failure 404 {object} map[string]string "No user with that id"
// @Router /articles/ [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	// The creating user is identified by the numeric user_id query
	// parameter; the accompanying token parameter is part of the historical
	// contract but was never checked.
	userIDParam := r.URL.Query().Get("user_id")
	if userIDParam == "" {
		h.RespondError(w, http.StatusBadRequest, "user_id parameter is required")
		return
	}
	userID, err := strconv.Atoi(userIDParam)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user_id parameter")
		return
	}

	var patch models.ArticlePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.Logger.Error("failed to decode article draft", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articleService.Create(r.Context(), userID, &patch)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, article)
}

// List handles GET /articles
// @Summary List visible articles
// @Description List the caller's own articles; admins see every article.
// @Tags articles
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Article
// @Failure 401 {object} map[string]string "Missing or malformed token"
// @Failure 404 {object} map[string]string "Token resolves to no user"
// @Router /articles [get]
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.BearerToken(r.Context())

	articles, err := h.articleService.List(r.Context(), token)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, articles)
}

// Get handles GET /articles/{id}
// @Summary Get an article
// @Description Get one article. Permitted for the article's author and admins.
// @Tags articles
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Article ID"
// @Success 200 {object} models.Article
// @Failure 401 {object} map[string]string "Missing or malformed token"
// @Failure 403 {object} map[string]string "Caller is neither author nor admin"
// @Failure 404 {object} map[string]string "Article not found"
// @Router /articles/{id} [get]
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	articleID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	token, _ := middleware.BearerToken(r.Context())

	article, err := h.articleService.Get(r.Context(), token, articleID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, article)
}

// Update handles PATCH /articles/{id}
// @Summary Update an article
// @Description Apply a partial update; fields absent from the payload keep their stored values.
// @Tags articles
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param article body models.ArticlePatch true "Fields to update"
// @Success 200 {object} models.Article "Updated article"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 404 {object} map[string]string "Article not found"
// @Router /articles/{id} [patch]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	articleID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	var patch models.ArticlePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.Logger.Error("failed to decode article patch", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The bearer token is forwarded when present; the service only consults
	// it when write ownership enforcement is enabled.
	token, _ := middleware.BearerToken(r.Context())

	article, err := h.articleService.Update(r.Context(), token, articleID, &patch)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, article)
}

// Delete handles DELETE /articles/{id}
// @Summary Delete an article
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} map[string]bool "Deleted"
// @Failure 404 {object} map[string]string "Article not found"
// @Router /articles/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	articleID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	token, _ := middleware.BearerToken(r.Context())

	if err := h.articleService.Delete(r.Context(), token, articleID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
