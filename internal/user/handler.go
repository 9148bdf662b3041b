// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/middleware"
	"github.com/lalonstore/lalon-store-api/internal/storage"
)

type Handler struct {
	service   *Service
	temp      *storage.TempStore
	validator *validator.Validate
}

func NewHandler(service *Service, temp *storage.TempStore) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	//nolint:errcheck // tag name is a compile-time constant
	_ = v.RegisterValidation("bd_phone", ValidBDPhone)

	return &Handler{
		service:   service,
		temp:      temp,
		validator: v,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)

		r.With(adminOnly).Get("/all", h.ListUsers)
		r.Get("/{id}", h.GetUser)
		r.Patch("/{userId}", h.UpdateUser)
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := ListUsersParams{
		Page:      parseIntQuery(r, "page", 1),
		Limit:     parseIntQuery(r, "limit", 10),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		FirstName: q.Get("firstName"),
		LastName:  q.Get("lastName"),
		Email:     q.Get("email"),
		Phone:     q.Get("phone"),
		Role:      q.Get("role"),
	}

	users, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		"All user retrieval successfully",
		users,
		total,
		params.Page,
		params.Limit,
	)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.service.GetOne(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Profile data fetched!", u)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")

	// Profile edits are owner-or-admin.
	isAdmin := middleware.IsAdmin(r.Context())
	if !isAdmin && middleware.GetUserID(r.Context()) != id {
		core.JSONError(w, core.ForbiddenError("Forbidden"))
		return
	}

	req, avatarPath, err := h.decodeUpdate(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		storage.RemoveLocalFiles([]string{avatarPath})
		core.JSONError(
			w,
			core.ValidationError(core.FormatValidationError(err)),
		)
		return
	}

	// Only admins assign roles; anyone else editing their own profile
	// must not be able to grant themselves ADMIN.
	if req.Role != "" && !isAdmin {
		storage.RemoveLocalFiles([]string{avatarPath})
		core.JSONError(
			w,
			core.ForbiddenError("You are not allowed to change roles"),
		)
		return
	}

	u, err := h.service.Update(r.Context(), id, req, avatarPath)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "User successfully updated", u)
}

func (h *Handler) decodeUpdate(
	r *http.Request,
) (UpdateUserRequest, string, error) {
	var req UpdateUserRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		avatarPath, err := h.temp.File(r, "avatar")
		if err != nil {
			return req, "", err
		}

		req = UpdateUserRequest{
			FirstName: r.FormValue("firstName"),
			LastName:  r.FormValue("lastName"),
			Email:     r.FormValue("email"),
			Phone:     r.FormValue("phone"),
			Address:   r.FormValue("address"),
			Role:      r.FormValue("role"),
		}
		return req, avatarPath, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, "", core.BadRequestError("Invalid request body")
	}

	return req, "", nil
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 1 {
		return defaultVal
	}

	return parsed
}
