// AngelaMos | 2026
// handler.go

package storage

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/middleware"
)

// AccessIndex reports which clients own documents stored under a key.
type AccessIndex interface {
	ObjectClientIDs(ctx context.Context, key string) ([]string, error)
}

type UploadRequest struct {
	FileName string `json:"fileName" validate:"required,min=1,max=255"`
}

type Handler struct {
	store  ObjectStore
	access AccessIndex
}

// NewHandler accepts a nil store, in which case every route answers 503.
func NewHandler(store ObjectStore, access AccessIndex) *Handler {
	return &Handler{store: store, access: access}
}

// RegisterUpload mounts the staff-only upload route.
func (h *Handler) RegisterUpload(r chi.Router) {
	r.Post("/objects/upload", h.Upload)
}

// RegisterDownload mounts the download route. It must sit behind optional
// auth for both realms.
func (h *Handler) RegisterDownload(r chi.Router) {
	r.Get("/objects/*", h.Download)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		core.JSONError(w, core.FeatureDisabledError("object storage"))
		return
	}

	var req UploadRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	upload, err := h.store.PresignUpload(r.Context(), req.FileName)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, upload)
}

// Download streams an object. Staff may read any object. Portal users may
// read only objects attached to documents of their own client.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		core.JSONError(w, core.FeatureDisabledError("object storage"))
		return
	}

	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if !ValidKey(key) {
		core.NotFound(w, "object")
		return
	}

	ctx := r.Context()
	staff := middleware.GetClaims(ctx, middleware.StaffRealm)
	portal := middleware.GetClaims(ctx, middleware.PortalRealm)

	switch {
	case staff != nil:
	case portal != nil:
		owners, err := h.access.ObjectClientIDs(ctx, key)
		if err != nil {
			core.InternalServerError(w, err)
			return
		}
		if !slices.Contains(owners, portal.ClientID) {
			core.Forbidden(w, "")
			return
		}
	default:
		core.Unauthorized(w, "")
		return
	}

	body, info, err := h.store.Open(ctx, key)
	if err != nil {
		core.HandleError(w, err, "object")
		return
	}
	defer body.Close() //nolint:errcheck // read-only stream

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if info.Size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	if info.ETag != "" {
		w.Header().Set("ETag", `"`+info.ETag+`"`)
	}
	w.Header().Set("Cache-Control", "private, max-age=0")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		slog.WarnContext(ctx, "object stream interrupted", "key", key, "error", err)
	}
}
