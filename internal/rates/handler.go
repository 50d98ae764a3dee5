// AngelaMos | 2026
// handler.go

package rates

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
	r.Route("/rate-tables", func(r chi.Router) {
		r.Get("/", h.ListTables)
		r.Post("/", h.CreateTable)
		r.Get("/resolve", h.Resolve)
		r.Get("/{id}", h.GetTable)
		r.Put("/{id}", h.UpdateTable)
		r.Patch("/{id}", h.UpdateTable)
		r.Delete("/{id}", h.DeleteTable)
	})

	r.Route("/activity-templates", func(r chi.Router) {
		r.Get("/", h.ListTemplates)
		r.Post("/", h.CreateTemplate)
		r.Get("/{id}", h.GetTemplate)
		r.Put("/{id}", h.UpdateTemplate)
		r.Patch("/{id}", h.UpdateTemplate)
		r.Delete("/{id}", h.DeleteTemplate)
	})
}

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	params := ListTablesParams{
		AttorneyID: core.QueryUUID(r, "attorneyId"),
		ClientID:   core.QueryUUID(r, "clientId"),
	}

	rows, total, err := h.service.ListTables(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	var req CreateRateTableRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	rt, err := h.service.CreateTable(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "rate table")
		return
	}

	core.Created(w, rt)
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "rate table")
	if !ok {
		return
	}

	rt, err := h.service.GetTable(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "rate table")
		return
	}

	core.OK(w, rt)
}

func (h *Handler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "rate table")
	if !ok {
		return
	}

	var req UpdateRateTableRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	rt, err := h.service.UpdateTable(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "rate table")
		return
	}

	core.OK(w, rt)
}

func (h *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "rate table")
	if !ok {
		return
	}

	if err := h.service.DeleteTable(r.Context(), id); err != nil {
		core.HandleError(w, err, "rate table")
		return
	}

	core.NoContent(w)
}

// Resolve answers which hourly rate a new time entry would receive. The
// attorney defaults to the caller.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	q := ResolveQuery{
		AttorneyID: core.QueryUUID(r, "attorneyId"),
		ClientID:   core.QueryUUID(r, "clientId"),
		CaseID:     core.QueryUUID(r, "caseId"),
		Activity:   r.URL.Query().Get("activity"),
	}
	if q.AttorneyID == "" {
		q.AttorneyID = middleware.GetUserID(r.Context())
	}

	res, err := h.service.Resolve(r.Context(), q)
	if err != nil {
		core.HandleError(w, err, "case")
		return
	}

	core.OK(w, res)
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	params := ListTemplatesParams{
		AttorneyID: core.QueryUUID(r, "attorneyId"),
		Search:     r.URL.Query().Get("search"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}

	rows, total, err := h.service.ListTemplates(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req CreateTemplateRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	t, err := h.service.CreateTemplate(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "activity template")
		return
	}

	core.Created(w, t)
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "activity template")
	if !ok {
		return
	}

	t, err := h.service.GetTemplate(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "activity template")
		return
	}

	core.OK(w, t)
}

func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "activity template")
	if !ok {
		return
	}

	var req UpdateTemplateRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	t, err := h.service.UpdateTemplate(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "activity template")
		return
	}

	core.OK(w, t)
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "activity template")
	if !ok {
		return
	}

	if err := h.service.DeleteTemplate(r.Context(), id); err != nil {
		core.HandleError(w, err, "activity template")
		return
	}

	core.NoContent(w)
}
