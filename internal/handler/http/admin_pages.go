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

// AdminPageHandler handles the back-office content page endpoints.
type AdminPageHandler struct {
	service *service.ContentService
	logger  *slog.Logger
}

// NewAdminPageHandler creates a new admin page handler.
func NewAdminPageHandler(svc *service.ContentService, logger *slog.Logger) *AdminPageHandler {
	return &AdminPageHandler{
		service: svc,
		logger:  logger,
	}
}

// ListPages handles GET /api/v1/admin/pages, including unpublished pages.
func (h *AdminPageHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.service.ListPages(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pages})
}

// GetPage handles GET /api/v1/admin/pages/{id}.
func (h *AdminPageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	page, err := h.service.GetPage(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// CreatePage handles POST /api/v1/admin/pages.
func (h *AdminPageHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var input domain.CreatePageInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	page, err := h.service.CreatePage(r.Context(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: page})
}

// UpdatePage handles PUT /api/v1/admin/pages/{id}.
func (h *AdminPageHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input domain.UpdatePageInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	page, err := h.service.UpdatePage(r.Context(), id.String(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// DeletePage handles DELETE /api/v1/admin/pages/{id}.
func (h *AdminPageHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeletePage(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}

// AddSection handles POST /api/v1/admin/pages/{id}/sections.
func (h *AdminPageHandler) AddSection(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input domain.CreateSectionInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	section, err := h.service.AddSection(r.Context(), id.String(), &input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: section})
}

// DeleteSection handles DELETE /api/v1/admin/pages/{id}/sections/{sectionId}.
func (h *AdminPageHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := httputil.ParseUUID(w, chi.URLParam(r, "sectionId"))
	if !ok {
		return
	}

	if err := h.service.DeleteSection(r.Context(), sectionID.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": sectionID.String(), "status": "deleted"}})
}
