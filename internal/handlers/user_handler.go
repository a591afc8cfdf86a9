package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/myblog/backend/internal/middleware"
	"github.com/myblog/backend/internal/models"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for user lookup business logic.
type UserService interface {
	// Method GetUser retrieves a user by id. The caller is resolved from
	// its own bearer token and must be an admin.
	GetUser(ctx context.Context, token string, userID int) (*models.User, error)
	// Method Me returns the caller's own user record.
	Me(ctx context.Context, token string) (*models.User, error)
}

// UserHandler handles user HTTP requests
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		userService: userService,
	}
}

// RegisterRoutes registers all user handler routes
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireToken).Get("/users/{id}", h.GetUser)
	r.With(middleware.RequireToken).Get("/me", h.Me)
}

// GetUser handles GET /users/{id}
// @Summary Get a user
// @Description Get a user by id. The caller must be an admin.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "Missing or malformed token"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	token, _ := middleware.BearerToken(r.Context())

	user, err := h.userService.GetUser(r.Context(), token, userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// Me handles GET /me
// @Summary Get the current user
// @Description Get the user record the bearer token resolves to.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "Missing or malformed token"
// @Failure 404 {object} map[string]string "Token resolves to no user"
// @Router /me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.BearerToken(r.Context())

	user, err := h.userService.Me(r.Context(), token)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}
