// AngelaMos | 2026
// handler.go

package invoice

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
	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/generate", h.Generate)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Update)
		r.Patch("/{id}/status", h.SetStatus)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	params := ListParams{
		ClientID: core.QueryUUID(r, "clientId"),
		CaseID:   core.QueryUUID(r, "caseId"),
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
	}

	rows, total, err := h.service.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	inv, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "invoice")
		return
	}

	core.Created(w, inv)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateInvoiceRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	inv, err := h.service.Generate(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "invoice")
		return
	}

	core.Created(w, inv)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "invoice")
	if !ok {
		return
	}

	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "invoice")
		return
	}

	core.OK(w, inv)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "invoice")
	if !ok {
		return
	}

	var req UpdateInvoiceRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	inv, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "invoice")
		return
	}

	core.OK(w, inv)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "invoice")
	if !ok {
		return
	}

	var req StatusRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	inv, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		core.HandleError(w, err, "invoice")
		return
	}

	core.OK(w, inv)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "invoice")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "invoice")
		return
	}

	core.NoContent(w)
}
