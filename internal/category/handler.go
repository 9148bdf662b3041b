// AngelaMos | 2026
// handler.go

package category

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/storage"
)

type Handler struct {
	service   *Service
	temp      *storage.TempStore
	validator *validator.Validate
}

func NewHandler(service *Service, temp *storage.TempStore) *Handler {
	return &Handler{
		service:   service,
		temp:      temp,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Get("/{categoryId}", h.GetCategory)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Post("/", h.CreateCategory)
			r.Patch("/{categoryId}", h.UpdateCategory)
			r.Delete("/", h.DeleteCategories)
			r.Delete("/{id}", h.DeleteCategory)
		})
	})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	thumbnailPath, logoPath, err := h.imageFiles(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	req := CreateCategoryRequest{Title: r.FormValue("title")}

	if err := h.validator.Struct(req); err != nil {
		storage.RemoveLocalFiles([]string{thumbnailPath, logoPath})
		core.JSONError(
			w,
			core.ValidationError(core.FormatValidationError(err)),
		)
		return
	}

	c, err := h.service.Create(r.Context(), req, thumbnailPath, logoPath)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Category created successfully", c)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")

	thumbnailPath, logoPath, err := h.imageFiles(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	req := UpdateCategoryRequest{Title: r.FormValue("title")}

	if err := h.validator.Struct(req); err != nil {
		storage.RemoveLocalFiles([]string{thumbnailPath, logoPath})
		core.JSONError(
			w,
			core.ValidationError(core.FormatValidationError(err)),
		)
		return
	}

	c, err := h.service.Update(r.Context(), id, req, thumbnailPath, logoPath)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Category updated successfully", c)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAll(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Categories retrieved successfully", categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Category details retrieved successfully", c)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	message, err := h.service.DeleteOne(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, message, nil)
}

func (h *Handler) DeleteCategories(w http.ResponseWriter, r *http.Request) {
	var req BatchDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request")
		return
	}

	message, err := h.service.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, message, nil)
}

func (h *Handler) imageFiles(r *http.Request) (string, string, error) {
	if !strings.HasPrefix(
		r.Header.Get("Content-Type"),
		"multipart/form-data",
	) {
		return "", "", nil
	}

	thumbnailPath, err := h.temp.File(r, "thumbnail")
	if err != nil {
		return "", "", err
	}

	logoPath, err := h.temp.File(r, "logo")
	if err != nil {
		storage.RemoveLocalFiles([]string{thumbnailPath})
		return "", "", err
	}

	return thumbnailPath, logoPath, nil
}
