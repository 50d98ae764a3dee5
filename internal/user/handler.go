// AngelaMos | 2026
// handler.go

package user

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

// RegisterRoutes mounts staff user management. Access is decided by the
// authorization policy in front of the /api group.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{userID}", h.GetUser)
		r.Put("/{userID}", h.UpdateUser)
		r.Patch("/{userID}", h.UpdateUser)
		r.Delete("/{userID}", h.DeleteUser)
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	q := r.URL.Query()
	params := ListUsersParams{
		Search:   q.Get("search"),
		Role:     q.Get("role"),
		IsActive: q.Get("isActive"),
	}

	users, total, err := h.service.ListUsers(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToUserResponseList(users), page.Page, page.PageSize, total)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "userID", "user")
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "userID", "user")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	requesterID := middleware.GetUserID(r.Context())
	user, err := h.service.UpdateUser(r.Context(), requesterID, id, req)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "userID", "user")
	if !ok {
		return
	}

	requesterID := middleware.GetUserID(r.Context())
	if err := h.service.DeleteUser(r.Context(), requesterID, id); err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.NoContent(w)
}
