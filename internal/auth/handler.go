// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lalonstore/lalon-store-api/internal/config"
	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/middleware"
)

type Handler struct {
	service      *Service
	validator    *validator.Validate
	jwtConfig    config.JWTConfig
	isProduction bool
}

func NewHandler(
	service *Service,
	jwtConfig config.JWTConfig,
	isProduction bool,
) *Handler {
	return &Handler{
		service:      service,
		validator:    newValidator(),
		jwtConfig:    jwtConfig,
		isProduction: isProduction,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(
			w,
			core.ValidationError(core.FormatValidationError(err)),
		)
		return
	}

	u, err := h.service.Signup(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, "User created successfully!", u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.JSONError(
			w,
			core.ValidationError(core.FormatValidationError(err)),
		)
		return
	}

	data, err := h.service.Login(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    data.AccessToken,
		Path:     "/",
		MaxAge:   int(h.jwtConfig.AccessTokenExpire.Seconds()),
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	})

	core.OK(w, "User logged in successfully !", data)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r)

	clearCookie := func(name string) {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.isProduction,
		})
	}
	clearCookie("accessToken")
	clearCookie("refreshToken")

	if err := h.service.Logout(r.Context(), token); err != nil {
		core.JSONError(w, core.NewAppError(
			err,
			"Error logging out. Please try again.",
			http.StatusInternalServerError,
			"INTERNAL",
		))
		return
	}

	core.OK(w, "User logged out successfully!", nil)
}
