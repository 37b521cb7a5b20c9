package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wali-jeweller/storefront/internal/domain"
	"github.com/wali-jeweller/storefront/internal/service"
	"github.com/wali-jeweller/storefront/internal/tablestate"
	"github.com/wali-jeweller/storefront/pkg/httputil"
	"github.com/wali-jeweller/storefront/pkg/validator"
)

// AdminProductHandler handles the back-office product endpoints.
type AdminProductHandler struct {
	service *service.ProductService
	codec   tablestate.Codec
	logger  *slog.Logger
}

// NewAdminProductHandler creates a new admin product handler.
func NewAdminProductHandler(svc *service.ProductService, logger *slog.Logger) *AdminProductHandler {
	return &AdminProductHandler{
		service: svc,
		codec:   tablestate.Codec{PageSize: tablestate.DefaultPageSize},
		logger:  logger,
	}
}

// productTableResponse is the admin product list envelope. Query echoes the
// canonical encoding of the applied table state so the client can sync its
// URL bar.
type productTableResponse struct {
	Products  []domain.Product `json:"products"`
	Total     int              `json:"total"`
	PageCount int              `json:"page_count"`
	Query     string           `json:"query"`
}

// ListProducts handles GET /api/v1/admin/products. The table state (search,
// page, size, sort, filters) is carried entirely in the query string.
func (h *AdminProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	state := h.codec.Decode(r.URL.Query())

	list, err := h.service.ListProducts(r.Context(), state)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// Echo the page that was actually served, not the one requested; the
	// repository clamps out-of-range pages to the filtered row count.
	state.PageIndex = list.PageIndex

	pageCount := list.Total / state.PageSize
	if list.Total%state.PageSize > 0 {
		pageCount++
	}
	if pageCount < 1 {
		pageCount = 1
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: productTableResponse{
		Products:  list.Products,
		Total:     list.Total,
		PageCount: pageCount,
		Query:     h.codec.Encode(state).Encode(),
	}})
}

// GetProduct handles GET /api/v1/admin/products/{id}.
func (h *AdminProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// CreateProduct handles POST /api/v1/admin/products.
func (h *AdminProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var input domain.CreateProductInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}.
func (h *AdminProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var input domain.UpdateProductInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id.String(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}.
func (h *AdminProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}

// AddImageRequest is the JSON request body for attaching an image.
type AddImageRequest struct {
	URL      string  `json:"url" validate:"required,url"`
	Alt      *string `json:"alt" validate:"omitempty,max=255"`
	Position int     `json:"position" validate:"gte=0"`
}

// AddImage handles POST /api/v1/admin/products/{id}/images.
func (h *AdminProductHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req AddImageRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	image, err := h.service.AddImage(r.Context(), id.String(), req.URL, req.Alt, req.Position)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: image})
}

// DeleteImage handles DELETE /api/v1/admin/products/{id}/images/{imageId}.
func (h *AdminProductHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	imageID, ok := httputil.ParseUUID(w, chi.URLParam(r, "imageId"))
	if !ok {
		return
	}

	if err := h.service.DeleteImage(r.Context(), imageID.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": imageID.String(), "status": "deleted"}})
}
