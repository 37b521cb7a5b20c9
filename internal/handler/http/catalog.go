package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wali-jeweller/storefront/internal/domain"
	"github.com/wali-jeweller/storefront/internal/service"
	"github.com/wali-jeweller/storefront/pkg/httputil"
	"github.com/wali-jeweller/storefront/pkg/pagination"
)

// CatalogHandler serves the public storefront catalog: products, categories,
// collections, sizes, and content pages. Everything here is read-only.
type CatalogHandler struct {
	products    *service.ProductService
	categories  *service.CategoryService
	collections *service.CollectionService
	sizes       *service.SizeService
	content     *service.ContentService
	logger      *slog.Logger
}

// NewCatalogHandler creates a new storefront catalog handler.
func NewCatalogHandler(
	products *service.ProductService,
	categories *service.CategoryService,
	collections *service.CollectionService,
	sizes *service.SizeService,
	content *service.ContentService,
	logger *slog.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		products:    products,
		categories:  categories,
		collections: collections,
		sizes:       sizes,
		content:     content,
		logger:      logger,
	}
}

// GetProduct handles GET /api/v1/products/{slug}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// GetRelatedProducts handles GET /api/v1/products/{slug}/related. Products
// without a stored embedding return an empty list rather than an error.
func (h *CatalogHandler) GetRelatedProducts(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	related, err := h.products.ListRelated(r.Context(), product.ID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: related})
}

// ListCategories handles GET /api/v1/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// ListCategoryProducts handles GET /api/v1/categories/{slug}/products,
// returning a page of the category's active products.
func (h *CatalogHandler) ListCategoryProducts(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.products.ListByCategory(r.Context(), category)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	params := pagination.FromRequest(r)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(pageOf(products, params), len(products), params),
	})
}

// pageOf returns the window of products selected by the pagination params.
func pageOf(products []domain.Product, params pagination.Params) []domain.Product {
	if params.Offset >= len(products) {
		return []domain.Product{}
	}
	end := params.Offset + params.PerPage
	if end > len(products) {
		end = len(products)
	}
	return products[params.Offset:end]
}

// ListCollections handles GET /api/v1/collections.
func (h *CatalogHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.collections.ListCollections(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: collections})
}

// GetCollectionProducts handles GET /api/v1/collections/{slug}/products,
// returning products in curated order.
func (h *CatalogHandler) GetCollectionProducts(w http.ResponseWriter, r *http.Request) {
	collection, err := h.collections.GetCollectionBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.collections.ListProducts(r.Context(), collection.ID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// ListSizes handles GET /api/v1/sizes.
func (h *CatalogHandler) ListSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.sizes.ListSizes(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: sizes})
}

// ListPages handles GET /api/v1/pages, returning published pages only.
func (h *CatalogHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.content.ListPublishedPages(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pages})
}

// GetPage handles GET /api/v1/pages/{slug}. Unpublished pages 404.
func (h *CatalogHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.GetPublishedPage(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}
