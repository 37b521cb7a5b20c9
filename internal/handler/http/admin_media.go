package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wali-jeweller/storefront/internal/service"
	"github.com/wali-jeweller/storefront/pkg/httputil"
)

// presignTTL is how long presigned URLs stay valid.
const presignTTL = 15 * time.Minute

// AdminMediaHandler handles the back-office image upload endpoints.
type AdminMediaHandler struct {
	service *service.MediaService
	logger  *slog.Logger
}

// NewAdminMediaHandler creates a new admin media handler.
func NewAdminMediaHandler(svc *service.MediaService, logger *slog.Logger) *AdminMediaHandler {
	return &AdminMediaHandler{
		service: svc,
		logger:  logger,
	}
}

// Upload handles POST /api/v1/admin/media. The request is multipart form
// data with a "file" part; an optional "prefix" field groups objects in the
// bucket and defaults to "products".
func (h *AdminMediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+4096)

	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid multipart form: " + err.Error()},
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "missing file part"},
		})
		return
	}
	defer file.Close()

	prefix := r.FormValue("prefix")
	if prefix == "" {
		prefix = "products"
	}

	result, err := h.service.UploadImage(r.Context(), &service.UploadImageInput{
		Prefix:      prefix,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}

// List handles GET /api/v1/admin/media. The "prefix" query parameter scopes
// the listing.
func (h *AdminMediaHandler) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.service.ListImages(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: keys})
}

// Delete handles DELETE /api/v1/admin/media. The object key comes from the
// "key" query parameter since keys contain slashes.
func (h *AdminMediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "key query parameter is required"},
		})
		return
	}

	if err := h.service.DeleteImage(r.Context(), key); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"key": key, "status": "deleted"}})
}

// Presign handles GET /api/v1/admin/media/presign, returning a time-limited
// URL for the key in the "key" query parameter.
func (h *AdminMediaHandler) Presign(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "key query parameter is required"},
		})
		return
	}

	url, err := h.service.PresignedURL(r.Context(), key, presignTTL)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"url": url}})
}
