// AngelaMos | 2026
// handler.go

package cases

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cases", func(r chi.Router) {
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
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Priority:   q.Get("priority"),
		ClientID:   core.QueryUUID(r, "clientId"),
		AttorneyID: core.QueryUUID(r, "attorneyId"),
	}

	rows, total, err := h.service.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCaseRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "case")
		return
	}

	core.Created(w, c)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "case")
	if !ok {
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "case")
		return
	}

	core.OK(w, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "case")
	if !ok {
		return
	}

	var req UpdateCaseRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "case")
		return
	}

	core.OK(w, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "case")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "case")
		return
	}

	core.NoContent(w)
}
