// AngelaMos | 2026
// handler.go

package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/storage"
)

type Handler struct {
	service *Service
	temp    *storage.TempStore
}

func NewHandler(service *Service, temp *storage.TempStore) *Handler {
	return &Handler{service: service, temp: temp}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/uploads", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.UploadFiles)
	})
}

func (h *Handler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	paths, err := h.temp.Files(r, "images")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	urls, err := h.service.UploadFiles(r.Context(), paths)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Files uploaded successfully", urls)
}
