// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/middleware"
)

type Handler struct {
	service       *Service
	secureCookies bool
}

func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{
		service:       service,
		secureCookies: secureCookies,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, optional, loginLimiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.With(optional).Get("/me", h.GetMe)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Put("/profile", h.UpdateProfile)
			r.Put("/password", h.ChangePassword)
		})
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			core.JSONError(w, core.UnauthorizedError("invalid username or password"))
		case errors.Is(err, ErrAccountDisabled):
			core.JSONError(w, core.ForbiddenError("account is disabled"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	SetSessionCookie(
		w,
		middleware.StaffRealm.Cookie,
		session.Token,
		session.ExpiresAt,
		h.secureCookies,
	)

	core.OK(w, LoginResponse{User: session.User, ExpiresAt: session.ExpiresAt})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookie(w, middleware.StaffRealm.Cookie, h.secureCookies)
	core.OK(w, map[string]string{"message": "logged out"})
}

// GetMe answers with null data rather than 401 when there is no session so
// the SPA can call it on load.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.OK(w, nil)
		return
	}

	user, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) || errors.Is(err, ErrAccountDisabled) {
			ClearSessionCookie(w, middleware.StaffRealm.Cookie, h.secureCookies)
			core.OK(w, nil)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, user)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, user)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ChangePasswordRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(w, core.UnauthorizedError("current password is incorrect"))
			return
		}
		core.HandleError(w, err, "user")
		return
	}

	core.OK(w, map[string]string{"message": "password updated"})
}
