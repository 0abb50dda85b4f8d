package site

import (
	"net/http"
	"path/filepath"

	"github.com/appetiteclub/apt"
	"github.com/go-chi/chi/v5"
)

// Handler serves the static landing page and the menu data file.
type Handler struct {
	logger apt.Logger
	dir    string
}

func NewHandler(config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	dir := config.GetStringOrDef("web.static.dir", "public")

	return &Handler{
		logger: logger,
		dir:    dir,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/menu.json", h.Menu)
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}

func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.dir, "menu.json"))
}
