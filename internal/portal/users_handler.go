// AngelaMos | 2026
// users_handler.go

package portal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

// UsersHandler is the staff side of portal account management.
type UsersHandler struct {
	service *Service
}

func NewUsersHandler(service *Service) *UsersHandler {
	return &UsersHandler{service: service}
}

func (h *UsersHandler) RegisterRoutes(r chi.Router) {
	r.Route("/portal-users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Invite)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Post("/{id}/resend-invitation", h.Resend)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	params := ListParams{
		ClientID: core.QueryUUID(r, "clientId"),
		Search:   r.URL.Query().Get("search"),
	}

	users, total, err := h.service.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, users, page.Page, page.PageSize, total)
}

func (h *UsersHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req InviteRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Invite(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "portal user")
		return
	}

	core.Created(w, resp)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "portal user")
	if !ok {
		return
	}

	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "portal user")
		return
	}

	core.OK(w, u)
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "portal user")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.service.SetActive(r.Context(), id, *req.IsActive)
	if err != nil {
		core.HandleError(w, err, "portal user")
		return
	}

	core.OK(w, u)
}

func (h *UsersHandler) Resend(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "portal user")
	if !ok {
		return
	}

	resp, err := h.service.Resend(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "portal user")
		return
	}

	core.OK(w, resp)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "portal user")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "portal user")
		return
	}

	core.NoContent(w)
}
