// AngelaMos | 2026
// handler.go

package calendar

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
	r.Route("/calendar/events", func(r chi.Router) {
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
		EventType:  q.Get("eventType"),
		Status:     q.Get("status"),
		CaseID:     core.QueryUUID(r, "caseId"),
		ClientID:   core.QueryUUID(r, "clientId"),
		AttorneyID: core.QueryUUID(r, "attorneyId"),
	}
	if from, ok := core.QueryTime(r, "from"); ok {
		params.From = &from
	}
	if to, ok := core.QueryTime(r, "to"); ok {
		params.To = &to
	}

	rows, total, err := h.service.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "calendar event")
		return
	}

	core.Created(w, e)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "calendar event")
	if !ok {
		return
	}

	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "calendar event")
		return
	}

	core.OK(w, e)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "calendar event")
	if !ok {
		return
	}

	var req UpdateEventRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "calendar event")
		return
	}

	core.OK(w, e)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "calendar event")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "calendar event")
		return
	}

	core.NoContent(w)
}
