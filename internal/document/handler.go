// AngelaMos | 2026
// handler.go

package document

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	q := r.URL.Query()
	params := ListParams{
		CaseID:       core.QueryUUID(r, "caseId"),
		ClientID:     core.QueryUUID(r, "clientId"),
		DocumentType: q.Get("documentType"),
		Tag:          q.Get("tag"),
		Search:       q.Get("search"),
	}

	rows, total, err := h.service.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	d, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.HandleError(w, err, "document")
		return
	}

	core.Created(w, d)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "document")
	if !ok {
		return
	}

	d, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "document")
		return
	}

	core.OK(w, d)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "document")
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	d, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "document")
		return
	}

	core.OK(w, d)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "document")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "document")
		return
	}

	core.NoContent(w)
}
