// AngelaMos | 2026
// handler.go

package banner

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
	r.Route("/banners", func(r chi.Router) {
		r.Get("/", h.ListBanners)
		r.Get("/images", h.ListImages)
		r.Get("/{bannerId}", h.GetBanner)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Post("/", h.CreateBanner)
			r.Post("/images", h.UploadImages)
			r.Patch("/{bannerId}", h.UpdateBanner)
			r.Delete("/{bannerId}", h.DeleteBanner)
			r.Delete("/", h.DeleteBanners)
		})
	})
}

func (h *Handler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Create(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Banner Successfully Created", b)
}

func (h *Handler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bannerId")

	req, imagePath, err := h.decodeUpdate(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		storage.RemoveLocalFiles([]string{imagePath})
		core.JSONError(
			w,
			core.ValidationError(core.FormatValidationError(err)),
		)
		return
	}

	b, err := h.service.Update(r.Context(), id, req, imagePath)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Banner successfully updated", b)
}

func (h *Handler) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.service.GetAll(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "All Banners fetched", banners)
}

func (h *Handler) GetBanner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bannerId")

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Banner Found", b)
}

func (h *Handler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bannerId")

	message, err := h.service.DeleteOne(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, message, nil)
}

func (h *Handler) DeleteBanners(w http.ResponseWriter, r *http.Request) {
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

func (h *Handler) UploadImages(w http.ResponseWriter, r *http.Request) {
	imagePaths, err := h.temp.Files(r, "images")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	urls, err := h.service.UploadImages(r.Context(), imagePaths)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Images uploaded successfully.", urls)
}

func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListImages(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Images fetched successfully.", images)
}

func (h *Handler) decodeUpdate(
	r *http.Request,
) (UpdateBannerRequest, string, error) {
	var req UpdateBannerRequest

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, "", core.BadRequestError("Invalid request body")
		}
		return req, "", nil
	}

	imagePath, err := h.temp.File(r, "image")
	if err != nil {
		return req, "", err
	}

	if value := r.FormValue("image"); value != "" {
		req.Image = &value
	}
	if value := r.FormValue("isActive"); value != "" {
		active := value == "true"
		req.IsActive = &active
	}

	return req, imagePath, nil
}
