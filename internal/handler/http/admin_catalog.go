package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wali-jeweller/storefront/internal/domain"
	"github.com/wali-jeweller/storefront/internal/service"
	"github.com/wali-jeweller/storefront/pkg/httputil"
	"github.com/wali-jeweller/storefront/pkg/validator"
)

// AdminCatalogHandler handles the back-office category, collection, and size
// endpoints.
type AdminCatalogHandler struct {
	categories  *service.CategoryService
	collections *service.CollectionService
	sizes       *service.SizeService
	logger      *slog.Logger
}

// NewAdminCatalogHandler creates a new admin catalog handler.
func NewAdminCatalogHandler(
	categories *service.CategoryService,
	collections *service.CollectionService,
	sizes *service.SizeService,
	logger *slog.Logger,
) *AdminCatalogHandler {
	return &AdminCatalogHandler{
		categories:  categories,
		collections: collections,
		sizes:       sizes,
		logger:      logger,
	}
}

// --- Categories ---

// CreateCategory handles POST /api/v1/admin/categories.
func (h *AdminCatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateCategoryInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	category, err := h.categories.CreateCategory(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: category})
}

// ListCategories handles GET /api/v1/admin/categories.
func (h *AdminCatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// UpdateCategory handles PUT /api/v1/admin/categories/{id}.
func (h *AdminCatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input domain.UpdateCategoryInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	category, err := h.categories.UpdateCategory(r.Context(), id.String(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: category})
}

// DeleteCategory handles DELETE /api/v1/admin/categories/{id}.
func (h *AdminCatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}

// --- Collections ---

// CreateCollection handles POST /api/v1/admin/collections.
func (h *AdminCatalogHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateCollectionInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	collection, err := h.collections.CreateCollection(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: collection})
}

// ListCollections handles GET /api/v1/admin/collections.
func (h *AdminCatalogHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.collections.ListCollections(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: collections})
}

// UpdateCollection handles PUT /api/v1/admin/collections/{id}.
func (h *AdminCatalogHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input domain.UpdateCollectionInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	collection, err := h.collections.UpdateCollection(r.Context(), id.String(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: collection})
}

// DeleteCollection handles DELETE /api/v1/admin/collections/{id}.
func (h *AdminCatalogHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.collections.DeleteCollection(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}

// CollectionProductRequest is the JSON request body for linking a product.
type CollectionProductRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Position  int    `json:"position" validate:"gte=0"`
}

// AddCollectionProduct handles POST /api/v1/admin/collections/{id}/products.
func (h *AdminCatalogHandler) AddCollectionProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req CollectionProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.collections.AddProduct(r.Context(), id.String(), req.ProductID, req.Position); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "linked"}})
}

// RemoveCollectionProduct handles
// DELETE /api/v1/admin/collections/{id}/products/{productId}.
func (h *AdminCatalogHandler) RemoveCollectionProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	if err := h.collections.RemoveProduct(r.Context(), id.String(), productID.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "unlinked"}})
}

// --- Sizes ---

// CreateSize handles POST /api/v1/admin/sizes.
func (h *AdminCatalogHandler) CreateSize(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateSizeInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	size, err := h.sizes.CreateSize(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: size})
}

// ListSizes handles GET /api/v1/admin/sizes.
func (h *AdminCatalogHandler) ListSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.sizes.ListSizes(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: sizes})
}

// UpdateSize handles PUT /api/v1/admin/sizes/{id}.
func (h *AdminCatalogHandler) UpdateSize(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input domain.UpdateSizeInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	size, err := h.sizes.UpdateSize(r.Context(), id.String(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: size})
}

// DeleteSize handles DELETE /api/v1/admin/sizes/{id}.
func (h *AdminCatalogHandler) DeleteSize(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.sizes.DeleteSize(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}
