// AngelaMos | 2026
// assistant.go

package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/middleware"
)

const feature = "AI assistant"

type Conversation struct {
	ID        string    `db:"id"         json:"id"`
	UserID    string    `db:"user_id"    json:"userId"`
	Query     string    `db:"query"      json:"query"`
	Response  string    `db:"response"   json:"response"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type ChatRequest struct {
	Query string `json:"query" validate:"required,min=1,max=8000"`
}

type Repository interface {
	Create(ctx context.Context, c *Conversation) error
	ListByUser(ctx context.Context, userID string, page core.PageParams) ([]Conversation, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Conversation) error {
	err := r.db.GetContext(ctx, &c.CreatedAt, `
		INSERT INTO ai_conversations (id, user_id, query, response)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`, c.ID, c.UserID, c.Query, c.Response)
	return core.TranslateError("create ai conversation", err)
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	page core.PageParams,
) ([]Conversation, int, error) {
	var f core.Filter
	f.Eq("user_id", userID)

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM ai_conversations WHERE `+f.Where(), f.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count ai conversations: %w", err)
	}

	limit, args := f.PageClause(page)
	query := `SELECT id, user_id, query, response, created_at FROM ai_conversations WHERE ` +
		f.Where() + ` ORDER BY created_at DESC, id ` + limit

	out := []Conversation{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list ai conversations: %w", err)
	}
	return out, total, nil
}

type Recorder interface {
	Record(event string)
}

type Service struct {
	repo      Repository
	completer Completer
	system    string
	recorder  Recorder
	logger    *slog.Logger
}

// NewService accepts a nil completer; Chat then reports the feature as
// disabled while history stays readable.
func NewService(
	repo Repository,
	completer Completer,
	systemPrompt string,
	recorder Recorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:      repo,
		completer: completer,
		system:    systemPrompt,
		recorder:  recorder,
		logger:    logger,
	}
}

func (s *Service) Enabled() bool {
	return s.completer != nil
}

func (s *Service) Chat(ctx context.Context, userID, query string) (*Conversation, error) {
	if !s.Enabled() {
		return nil, core.ErrFeatureDisabled
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, core.ErrInvalidInput
	}

	start := time.Now()
	reply, err := s.completer.Complete(ctx, s.system, query)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "assistant replied",
		"user_id", userID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	c := &Conversation{
		ID:       uuid.New().String(),
		UserID:   userID,
		Query:    query,
		Response: reply,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.Record("ai_chat")
	}
	return c, nil
}

func (s *Service) History(
	ctx context.Context,
	userID string,
	page core.PageParams,
) ([]Conversation, int, error) {
	return s.repo.ListByUser(ctx, userID, page)
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/ai", func(r chi.Router) {
		r.Post("/chat", h.Chat)
		r.Get("/conversations", h.Conversations)
	})
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.service.Enabled() {
		core.JSONError(w, core.FeatureDisabledError(feature))
		return
	}

	var req ChatRequest
	if !core.DecodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.service.Chat(r.Context(), middleware.GetUserID(r.Context()), req.Query)
	if err != nil {
		core.HandleError(w, err, "conversation")
		return
	}

	core.Created(w, c)
}

func (h *Handler) Conversations(w http.ResponseWriter, r *http.Request) {
	page := core.PageFromRequest(r)

	rows, total, err := h.service.History(r.Context(), middleware.GetUserID(r.Context()), page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, rows, page.Page, page.PageSize, total)
}
