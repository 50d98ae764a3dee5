// AngelaMos | 2026
// handler.go

package message

import (
	"net/http"
	"strconv"

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
	r.Route("/messages", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Update)
		r.Patch("/{id}/read", h.MarkRead)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	q := r.URL.Query()
	params := ListParams{
		CaseID:      core.QueryUUID(r, "caseId"),
		ClientID:    core.QueryUUID(r, "clientId"),
		MessageType: q.Get("messageType"),
		Search:      q.Get("search"),
	}
	if v, err := strconv.ParseBool(q.Get("isRead")); err == nil {
		params.IsRead = &v
	}

	rows, total, err := h.service.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	m, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.HandleError(w, err, "message")
		return
	}

	core.Created(w, m)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "message")
	if !ok {
		return
	}

	m, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "message")
		return
	}

	core.OK(w, m)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "message")
	if !ok {
		return
	}

	var req UpdateMessageRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	m, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "message")
		return
	}

	core.OK(w, m)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "message")
	if !ok {
		return
	}

	m, err := h.service.MarkRead(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "message")
		return
	}

	core.OK(w, m)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "message")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "message")
		return
	}

	core.NoContent(w)
}
