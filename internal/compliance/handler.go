// AngelaMos | 2026
// handler.go

package compliance

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

const maxUpcomingDays = 365

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/compliance/deadlines", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Update)
		r.Patch("/{id}/complete", h.Complete)
		r.Delete("/{id}", h.Delete)
	})
}

// List accepts upcoming=N to narrow to open deadlines due within N days.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	q := r.URL.Query()
	params := ListParams{
		Status:       q.Get("status"),
		DeadlineType: q.Get("deadlineType"),
		CaseID:       core.QueryUUID(r, "caseId"),
		AttorneyID:   core.QueryUUID(r, "attorneyId"),
	}
	if days := core.ParseIntQuery(r, "upcoming", 0); days > 0 {
		days = min(days, maxUpcomingDays)
		before := time.Now().UTC().AddDate(0, 0, days)
		params.DueBefore = &before
	}

	rows, total, err := h.service.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDeadlineRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	d, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "compliance deadline")
		return
	}

	core.Created(w, d)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "compliance deadline")
	if !ok {
		return
	}

	d, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "compliance deadline")
		return
	}

	core.OK(w, d)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "compliance deadline")
	if !ok {
		return
	}

	var req UpdateDeadlineRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	d, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "compliance deadline")
		return
	}

	core.OK(w, d)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "compliance deadline")
	if !ok {
		return
	}

	d, err := h.service.Complete(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "compliance deadline")
		return
	}

	core.OK(w, d)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "compliance deadline")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "compliance deadline")
		return
	}

	core.NoContent(w)
}
