package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RootHandler handles the greeting and utility routes
type RootHandler struct {
	BaseHandler
}

// NewRootHandler creates a new root handler
func NewRootHandler(logger *zap.Logger) *RootHandler {
	return &RootHandler{
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers the root handler routes
func (h *RootHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/add", h.Add)
}

// Root handles GET /
// @Summary Greeting
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *RootHandler) Root(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Hello World !"})
}

// Add handles GET /add
// @Summary Add two integers
// @Tags root
// @Produce json
// @Param a query int true "First addend"
// @Param b query int true "Second addend"
// @Success 200 {object} map[string]int
// @Failure 400 {object} map[string]string "Non-integer input"
// @Router /add [get]
func (h *RootHandler) Add(w http.ResponseWriter, r *http.Request) {
	a, err := strconv.Atoi(r.URL.Query().Get("a"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid a parameter")
		return
	}

	b, err := strconv.Atoi(r.URL.Query().Get("b"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid b parameter")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]int{"result": a + b})
}
