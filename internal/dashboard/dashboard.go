// AngelaMos | 2026
// dashboard.go

package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/billing"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

const upcomingWindow = 7 * 24 * time.Hour

// Window bounds one metrics computation. Month is the calendar month that
// contains Now.
type Window struct {
	Now        time.Time
	MonthStart time.Time
	MonthEnd   time.Time
	Horizon    time.Time
}

func WindowAt(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{
		Now:        now,
		MonthStart: start,
		MonthEnd:   start.AddDate(0, 1, 0),
		Horizon:    now.Add(upcomingWindow),
	}
}

type Metrics struct {
	ActiveCases         int             `json:"activeCases"`
	MonthlyRevenue      decimal.Decimal `json:"monthlyRevenue"`
	BillableHours       decimal.Decimal `json:"billableHours"`
	UpcomingCourtDates  int             `json:"upcomingCourtDates"`
	UnbilledHours       decimal.Decimal `json:"unbilledHours"`
	OutstandingInvoices int             `json:"outstandingInvoices"`
	OverdueDeadlines    int             `json:"overdueDeadlines"`
	UnreadMessages      int             `json:"unreadMessages"`
	GeneratedAt         time.Time       `json:"generatedAt"`
}

type Repository interface {
	ActiveCases(ctx context.Context) (int, error)
	PaidRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	BillableMinutes(ctx context.Context, from, to time.Time) (int, error)
	UnbilledMinutes(ctx context.Context) (int, error)
	CourtDates(ctx context.Context, from, to time.Time) (int, error)
	OutstandingInvoices(ctx context.Context) (int, error)
	OverdueDeadlines(ctx context.Context, now time.Time) (int, error)
	UnreadMessages(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (r *repository) ActiveCases(ctx context.Context) (int, error) {
	return r.count(ctx, "count active cases",
		`SELECT COUNT(*) FROM cases WHERE status = 'active'`)
}

func (r *repository) PaidRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(total), 0) FROM invoices
		WHERE status = 'paid' AND paid_at >= $1 AND paid_at < $2`, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum paid revenue: %w", err)
	}
	return total, nil
}

func (r *repository) BillableMinutes(ctx context.Context, from, to time.Time) (int, error) {
	return r.count(ctx, "sum billable minutes", `
		SELECT COALESCE(SUM(rounded_duration), 0) FROM time_entries
		WHERE billable AND end_time IS NOT NULL
		  AND start_time >= $1 AND start_time < $2`, from, to)
}

// UnbilledMinutes sums stopped billable work that no invoice has claimed:
// drafts awaiting review as well as entries marked ready to bill.
func (r *repository) UnbilledMinutes(ctx context.Context) (int, error) {
	return r.count(ctx, "sum unbilled minutes", `
		SELECT COALESCE(SUM(rounded_duration), 0) FROM time_entries
		WHERE billable AND end_time IS NOT NULL
		  AND status IN ('draft', 'ready_to_bill')`)
}

func (r *repository) CourtDates(ctx context.Context, from, to time.Time) (int, error) {
	return r.count(ctx, "count court dates", `
		SELECT COUNT(*) FROM calendar_events
		WHERE event_type = 'court_date' AND status <> 'cancelled'
		  AND start_time >= $1 AND start_time < $2`, from, to)
}

func (r *repository) OutstandingInvoices(ctx context.Context) (int, error) {
	return r.count(ctx, "count outstanding invoices",
		`SELECT COUNT(*) FROM invoices WHERE status IN ('sent', 'overdue')`)
}

func (r *repository) OverdueDeadlines(ctx context.Context, now time.Time) (int, error) {
	return r.count(ctx, "count overdue deadlines", `
		SELECT COUNT(*) FROM compliance_deadlines
		WHERE status = 'overdue' OR (status = 'pending' AND due_date < $1)`, now)
}

func (r *repository) UnreadMessages(ctx context.Context) (int, error) {
	return r.count(ctx, "count unread messages",
		`SELECT COUNT(*) FROM messages WHERE NOT is_read`)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Metrics runs every aggregate concurrently. Any failing query fails the
// whole snapshot.
func (s *Service) Metrics(ctx context.Context) (*Metrics, error) {
	w := WindowAt(s.now())
	m := &Metrics{GeneratedAt: w.Now}

	var billable, unbilled int
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		m.ActiveCases, err = s.repo.ActiveCases(ctx)
		return err
	})
	g.Go(func() (err error) {
		m.MonthlyRevenue, err = s.repo.PaidRevenue(ctx, w.MonthStart, w.MonthEnd)
		return err
	})
	g.Go(func() (err error) {
		billable, err = s.repo.BillableMinutes(ctx, w.MonthStart, w.MonthEnd)
		return err
	})
	g.Go(func() (err error) {
		unbilled, err = s.repo.UnbilledMinutes(ctx)
		return err
	})
	g.Go(func() (err error) {
		m.UpcomingCourtDates, err = s.repo.CourtDates(ctx, w.Now, w.Horizon)
		return err
	})
	g.Go(func() (err error) {
		m.OutstandingInvoices, err = s.repo.OutstandingInvoices(ctx)
		return err
	})
	g.Go(func() (err error) {
		m.OverdueDeadlines, err = s.repo.OverdueDeadlines(ctx, w.Now)
		return err
	})
	g.Go(func() (err error) {
		m.UnreadMessages, err = s.repo.UnreadMessages(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	m.BillableHours = billing.MinutesToHours(billable)
	m.UnbilledHours = billing.MinutesToHours(unbilled)
	return m, nil
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/metrics", h.GetMetrics)
}

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Metrics(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, m)
}
