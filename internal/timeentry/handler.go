// AngelaMos | 2026
// handler.go

package timeentry

import (
	"context"
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

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft ready_to_bill invoiced paid"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/time-entries", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/active", h.Active)
		r.Post("/batch", h.BatchStatus)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Patch("/{id}/pause", h.Pause)
		r.Patch("/{id}/resume", h.Resume)
		r.Patch("/{id}/stop", h.Stop)
		r.Patch("/{id}/status", h.SetStatus)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	q := r.URL.Query()
	params := ListParams{
		CaseID:     core.QueryUUID(r, "caseId"),
		AttorneyID: core.QueryUUID(r, "attorneyId"),
		InvoiceID:  core.QueryUUID(r, "invoiceId"),
		Status:     q.Get("status"),
	}
	if raw := q.Get("billable"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			params.Billable = &b
		}
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
	var req CreateTimeEntryRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.HandleError(w, err, "time entry")
		return
	}

	core.Created(w, e)
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.Active(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, e)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "time entry")
	if !ok {
		return
	}

	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "time entry")
		return
	}

	core.OK(w, e)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "time entry")
	if !ok {
		return
	}

	var req UpdateTimeEntryRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "time entry")
		return
	}

	core.OK(w, e)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "time entry")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "time entry")
		return
	}

	core.NoContent(w)
}

func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	h.timerAction(w, r, h.service.Pause)
}

func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	h.timerAction(w, r, h.service.Resume)
}

func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	h.timerAction(w, r, h.service.Stop)
}

func (h *Handler) timerAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, id string) (*TimeEntry, error),
) {
	id, ok := core.URLParamID(w, r, "id", "time entry")
	if !ok {
		return
	}

	e, err := action(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "time entry")
		return
	}

	core.OK(w, e)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "time entry")
	if !ok {
		return
	}

	var req statusRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		core.HandleError(w, err, "time entry")
		return
	}

	core.OK(w, e)
}

func (h *Handler) BatchStatus(w http.ResponseWriter, r *http.Request) {
	var req BatchStatusRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.BatchStatus(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "time entry")
		return
	}

	core.OK(w, res)
}
