// AngelaMos | 2026
// handler.go

package client

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
	r.Route("/clients", func(r chi.Router) {
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
	params := ListParams{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	}

	clients, total, err := h.service.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, clients, page.Page, page.PageSize, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "client")
		return
	}

	core.Created(w, c)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "client")
	if !ok {
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "client")
		return
	}

	core.OK(w, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "client")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "client")
		return
	}

	core.OK(w, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "client")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "client")
		return
	}

	core.NoContent(w)
}
