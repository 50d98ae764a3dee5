// AngelaMos | 2026
// handler.go

package portal

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/auth"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/cases"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/document"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/invoice"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/message"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/middleware"
)

type CaseReader interface {
	Get(ctx context.Context, id string) (*cases.Case, error)
	List(ctx context.Context, params cases.ListParams, page core.PageParams) ([]cases.Case, int, error)
}

type InvoiceReader interface {
	Get(ctx context.Context, id string) (*invoice.Invoice, error)
	List(ctx context.Context, params invoice.ListParams, page core.PageParams) ([]invoice.Invoice, int, error)
}

type DocumentReader interface {
	List(ctx context.Context, params document.ListParams, page core.PageParams) ([]document.Document, int, error)
}

type MessageBox interface {
	List(ctx context.Context, params message.ListParams, page core.PageParams) ([]message.Message, int, error)
	CreateFromPortal(
		ctx context.Context,
		portalUserID, clientID string,
		req message.PortalMessageRequest,
	) (*message.Message, error)
}

// Sources is the client-scoped view of firm data a portal user may read.
type Sources struct {
	Cases     CaseReader
	Invoices  InvoiceReader
	Documents DocumentReader
	Messages  MessageBox
}

type Handler struct {
	service       *Service
	sources       Sources
	secureCookies bool
}

func NewHandler(service *Service, sources Sources, secureCookies bool) *Handler {
	return &Handler{
		service:       service,
		sources:       sources,
		secureCookies: secureCookies,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, optional, loginLimiter func(http.Handler) http.Handler,
) {
	r.Route("/portal", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter).Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.With(optional).Get("/me", h.GetMe)
			r.With(loginLimiter).Get("/invitation/{token}", h.VerifyInvitation)
			r.With(loginLimiter).Post("/accept-invitation", h.AcceptInvitation)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator, requireClient)
			r.Get("/cases", h.ListCases)
			r.Get("/cases/{id}", h.GetCase)
			r.Get("/invoices", h.ListInvoices)
			r.Get("/invoices/{id}", h.GetInvoice)
			r.Get("/documents", h.ListDocuments)
			r.Get("/messages", h.ListMessages)
			r.Post("/messages", h.SendMessage)
		})
	})
}

// requireClient refuses portal sessions that carry no client, since every
// data query below is scoped by it.
func requireClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if middleware.GetPortalClientID(r.Context()) == "" {
			core.Forbidden(w, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.authError(w, err)
		return
	}

	h.startSession(w, session)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, middleware.PortalRealm.Cookie, h.secureCookies)
	core.OK(w, map[string]string{"message": "logged out"})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetPortalUserID(r.Context())
	if id == "" {
		core.OK(w, nil)
		return
	}

	u, err := h.service.CurrentUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) || errors.Is(err, ErrAccountDisabled) {
			auth.ClearSessionCookie(w, middleware.PortalRealm.Cookie, h.secureCookies)
			core.OK(w, nil)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, u)
}

func (h *Handler) VerifyInvitation(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.VerifyInvitation(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.authError(w, err)
		return
	}

	core.OK(w, status)
}

func (h *Handler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req AcceptInvitationRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.service.AcceptInvitation(r.Context(), req)
	if err != nil {
		h.authError(w, err)
		return
	}

	h.startSession(w, session)
}

func (h *Handler) startSession(w http.ResponseWriter, session *Session) {
	auth.SetSessionCookie(
		w,
		middleware.PortalRealm.Cookie,
		session.Token,
		session.ExpiresAt,
		h.secureCookies,
	)
	core.OK(w, LoginResponse{User: session.User, ExpiresAt: session.ExpiresAt})
}

func (h *Handler) authError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		core.JSONError(w, core.UnauthorizedError("invalid email or password"))
	case errors.Is(err, ErrAccountDisabled):
		core.JSONError(w, core.ForbiddenError("account is disabled"))
	case errors.Is(err, ErrInvitationExpired):
		core.JSONError(w, core.NewAppError(err, "invitation has expired",
			http.StatusBadRequest, "INVITATION_EXPIRED"))
	case errors.Is(err, ErrInvitationInvalid):
		core.JSONError(w, core.NewAppError(err, "invitation is invalid or already used",
			http.StatusBadRequest, "INVITATION_INVALID"))
	default:
		core.InternalServerError(w, err)
	}
}

func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	params := cases.ListParams{
		ClientID: middleware.GetPortalClientID(r.Context()),
		Status:   r.URL.Query().Get("status"),
	}

	rows, total, err := h.sources.Cases.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "case")
	if !ok {
		return
	}

	c, err := h.sources.Cases.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "case")
		return
	}
	if c.ClientID != middleware.GetPortalClientID(r.Context()) {
		core.Forbidden(w, "case belongs to another client")
		return
	}

	core.OK(w, c)
}

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	params := invoice.ListParams{
		ClientID: middleware.GetPortalClientID(r.Context()),
		CaseID:   core.QueryUUID(r, "caseId"),
		Status:   r.URL.Query().Get("status"),
	}

	rows, total, err := h.sources.Invoices.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := core.URLParamID(w, r, "id", "invoice")
	if !ok {
		return
	}

	inv, err := h.sources.Invoices.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "invoice")
		return
	}
	if inv.ClientID != middleware.GetPortalClientID(r.Context()) {
		core.Forbidden(w, "invoice belongs to another client")
		return
	}

	core.OK(w, inv)
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	params := document.ListParams{
		ClientID: middleware.GetPortalClientID(r.Context()),
		CaseID:   core.QueryUUID(r, "caseId"),
	}

	rows, total, err := h.sources.Documents.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)
	params := message.ListParams{
		ClientID:     middleware.GetPortalClientID(r.Context()),
		CaseID:       core.QueryUUID(r, "caseId"),
		PortalUserID: middleware.GetPortalUserID(r.Context()),
	}

	rows, total, err := h.sources.Messages.List(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req message.PortalMessageRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	clientID := middleware.GetPortalClientID(ctx)

	if req.CaseID != nil {
		c, err := h.sources.Cases.Get(ctx, *req.CaseID)
		if err != nil {
			core.HandleError(w, err, "case")
			return
		}
		if c.ClientID != clientID {
			core.Forbidden(w, "case belongs to another client")
			return
		}
	}

	m, err := h.sources.Messages.CreateFromPortal(ctx, middleware.GetPortalUserID(ctx), clientID, req)
	if err != nil {
		core.HandleError(w, err, "message")
		return
	}

	core.Created(w, m)
}
