// AngelaMos | 2026
// handler.go

package product

import (
	"encoding/json"
	"net/http"
	"strconv"

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
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{productId}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Post("/", h.CreateProduct)
			r.Patch("/{productId}", h.UpdateProduct)
			r.Delete("/{productId}/image", h.DeleteProductImage)
			r.Delete("/{productId}", h.DeleteProduct)
			r.Delete("/", h.DeleteProducts)
		})
	})
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	imagePaths, err := h.temp.Files(r, "images")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	req, err := decodeCreateForm(r)
	if err != nil {
		storage.RemoveLocalFiles(imagePaths)
		core.JSONError(w, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		storage.RemoveLocalFiles(imagePaths)
		core.JSONError(
			w,
			core.ValidationError(core.FormatValidationError(err)),
		)
		return
	}

	p, err := h.service.Create(r.Context(), req, imagePaths)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, "Product Successfully Created", p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")

	imagePaths, err := h.temp.Files(r, "images")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	req, err := decodeUpdateForm(r)
	if err != nil {
		storage.RemoveLocalFiles(imagePaths)
		core.JSONError(w, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		storage.RemoveLocalFiles(imagePaths)
		core.JSONError(
			w,
			core.ValidationError(core.FormatValidationError(err)),
		)
		return
	}

	p, err := h.service.Update(r.Context(), id, req, imagePaths)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Product successfully updated", p)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := ListProductsParams{
		Page:          parseIntQuery(r, "page", 1),
		Limit:         parseIntQuery(r, "limit", 10),
		SortBy:        q.Get("sortBy"),
		SortOrder:     q.Get("sortOrder"),
		Name:          q.Get("name"),
		SKU:           q.Get("sku"),
		Category:      q.Get("category"),
		Price:         parseFloatQuery(q.Get("price")),
		IsActive:      parseBoolQuery(q.Get("isActive")),
		IsWeekendDeal: parseBoolQuery(q.Get("isWeekendDeal")),
		IsFeatured:    parseBoolQuery(q.Get("isFeatured")),
	}

	products, total, err := h.service.GetAll(r.Context(), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		"All products retrieved successfully",
		products,
		total,
		params.Page,
		params.Limit,
	)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "Product retrieved successfully", p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")

	message, err := h.service.DeleteOne(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, message, nil)
}

func (h *Handler) DeleteProducts(w http.ResponseWriter, r *http.Request) {
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

func (h *Handler) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")

	var req DeleteImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.ImageURL == "" {
		core.BadRequest(w, "Image URL is required.")
		return
	}

	message, err := h.service.DeleteImage(r.Context(), id, req.ImageURL)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, message, nil)
}

func decodeCreateForm(r *http.Request) (CreateProductRequest, error) {
	var req CreateProductRequest

	price, err := parseFloatField(r, "price")
	if err != nil {
		return req, err
	}
	if price != nil {
		req.Price = *price
	}

	discount, err := parseFloatField(r, "discount")
	if err != nil {
		return req, err
	}

	stock, err := parseIntField(r, "stock")
	if err != nil {
		return req, err
	}

	req.Name = r.FormValue("name")
	req.Quantity = r.FormValue("quantity")
	req.Description = r.FormValue("description")
	req.Category = r.FormValue("category")
	req.Discount = discount
	req.Stock = stock
	req.IsActive = parseBoolQuery(r.FormValue("isActive"))
	req.IsWeekendDeal = parseBoolQuery(r.FormValue("isWeekendDeal"))
	req.IsFeatured = parseBoolQuery(r.FormValue("isFeatured"))

	return req, nil
}

func decodeUpdateForm(r *http.Request) (UpdateProductRequest, error) {
	var req UpdateProductRequest

	price, err := parseFloatField(r, "price")
	if err != nil {
		return req, err
	}

	discount, err := parseFloatField(r, "discount")
	if err != nil {
		return req, err
	}

	stock, err := parseIntField(r, "stock")
	if err != nil {
		return req, err
	}

	req.Name = r.FormValue("name")
	req.Quantity = r.FormValue("quantity")
	req.Description = r.FormValue("description")
	req.Category = r.FormValue("category")
	req.SKU = r.FormValue("sku")
	req.Price = price
	req.Discount = discount
	req.Stock = stock
	req.IsActive = parseBoolQuery(r.FormValue("isActive"))
	req.IsWeekendDeal = parseBoolQuery(r.FormValue("isWeekendDeal"))
	req.IsFeatured = parseBoolQuery(r.FormValue("isFeatured"))

	return req, nil
}

func parseFloatField(r *http.Request, field string) (*float64, error) {
	value := r.FormValue(field)
	if value == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, core.BadRequestError(field + " must be a number")
	}
	return &parsed, nil
}

func parseIntField(r *http.Request, field string) (*int, error) {
	value := r.FormValue(field)
	if value == "" {
		return nil, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, core.BadRequestError(field + " must be an integer")
	}
	return &parsed, nil
}

func parseFloatQuery(value string) *float64 {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseBoolQuery(value string) *bool {
	switch value {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
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
