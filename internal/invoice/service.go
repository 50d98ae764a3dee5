// AngelaMos | 2026
// service.go

package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/billing"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

const numberAttempts = 3

var ErrNothingToBill = fmt.Errorf("no ready to bill time entries: %w", core.ErrInvalidInput)

type Recorder interface {
	Record(event string)
}

type Settings struct {
	TaxRate          decimal.Decimal
	PaymentTermsDays int
}

type Service struct {
	repo     Repository
	settings Settings
	recorder Recorder
	now      func() time.Time
}

func NewService(repo Repository, settings Settings, recorder Recorder) *Service {
	return &Service{repo: repo, settings: settings, recorder: recorder, now: time.Now}
}

func (s *Service) record(event string) {
	if s.recorder != nil {
		s.recorder.Record(event)
	}
}

func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	inv, err := s.draft(req.ClientID, req.CaseID, req.DueDate, req.TaxRate, req.Notes)
	if err != nil {
		return nil, err
	}
	if req.IssueDate != nil {
		inv.IssueDate = req.IssueDate.UTC()
		if req.DueDate == nil {
			inv.DueDate = inv.IssueDate.AddDate(0, 0, s.settings.PaymentTermsDays)
		}
	}

	for _, it := range req.Items {
		if it.Quantity.IsNegative() || it.Rate.IsNegative() {
			return nil, fmt.Errorf("item quantity and rate must not be negative: %w", core.ErrInvalidInput)
		}
		qty, rate := it.Quantity.Round(2), it.Rate.Round(2)
		inv.Items = append(inv.Items, Item{
			ID:          uuid.New().String(),
			TimeEntryID: it.TimeEntryID,
			Description: it.Description,
			Quantity:    qty,
			Rate:        rate,
			Amount:      qty.Mul(rate).Round(2),
		})
	}

	if err := s.insert(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Generate bills every ready_to_bill entry of a client, or of one case,
// into a new invoice. Each entry becomes a line priced from its rounded
// duration.
func (s *Service) Generate(ctx context.Context, req GenerateInvoiceRequest) (*Invoice, error) {
	entries, err := s.repo.BillableEntries(ctx, req.ClientID, req.CaseID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNothingToBill
	}

	inv, err := s.draft(req.ClientID, req.CaseID, req.DueDate, req.TaxRate, req.Notes)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		entryID := e.ID
		inv.Items = append(inv.Items, Item{
			ID:          uuid.New().String(),
			TimeEntryID: &entryID,
			Description: lineDescription(e),
			Quantity:    billing.MinutesToHours(e.RoundedDuration),
			Rate:        e.HourlyRate,
			Amount:      billing.CalculateBillableAmount(e.RoundedDuration, e.HourlyRate),
		})
	}

	if err := s.insert(ctx, inv); err != nil {
		return nil, err
	}
	s.record("invoice_generated")
	return inv, nil
}

func lineDescription(e BillableEntry) string {
	desc := e.StartTime.Format("2006-01-02") + " " + e.Activity
	if e.Description != nil && *e.Description != "" {
		desc += ": " + *e.Description
	}
	return desc
}

func (s *Service) draft(
	clientID string,
	caseID *string,
	dueDate *time.Time,
	taxRate *decimal.Decimal,
	notes *string,
) (*Invoice, error) {
	now := s.now().UTC()
	inv := &Invoice{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		CaseID:    caseID,
		IssueDate: now,
		DueDate:   now.AddDate(0, 0, s.settings.PaymentTermsDays),
		TaxRate:   s.settings.TaxRate,
		Status:    StatusDraft,
		Notes:     notes,
	}
	if dueDate != nil {
		inv.DueDate = dueDate.UTC()
	}
	if taxRate != nil {
		if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("tax rate must be between 0 and 1: %w", core.ErrInvalidInput)
		}
		inv.TaxRate = *taxRate
	}
	return inv, nil
}

// insert fixes the totals, then assigns the next INV-YYYY-NNNN number,
// retrying when a concurrent insert takes it first.
func (s *Service) insert(ctx context.Context, inv *Invoice) error {
	if inv.DueDate.Before(inv.IssueDate) {
		return fmt.Errorf("due date before issue date: %w", core.ErrInvalidInput)
	}

	amounts := make([]decimal.Decimal, len(inv.Items))
	for i, it := range inv.Items {
		amounts[i] = it.Amount
	}
	totals := billing.ComputeTotals(amounts, inv.TaxRate)
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total

	year := inv.IssueDate.Year()
	var err error
	for range numberAttempts {
		var next int
		next, err = s.repo.NextNumber(ctx, billing.SequencePattern(billing.InvoicePrefix, year))
		if err != nil {
			return err
		}
		inv.InvoiceNumber = billing.FormatSequence(billing.InvoicePrefix, year, next)

		err = s.repo.Create(ctx, inv)
		if !errors.Is(err, core.ErrDuplicateKey) {
			break
		}
	}
	return err
}

func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Invoice, int, error) {
	return s.repo.List(ctx, params, page)
}

// Update edits descriptive fields only. Money columns are fixed when the
// invoice is created.
func (s *Service) Update(ctx context.Context, id string, req UpdateInvoiceRequest) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CaseID != nil {
		inv.CaseID = req.CaseID
	}
	if req.IssueDate != nil {
		inv.IssueDate = req.IssueDate.UTC()
	}
	if req.DueDate != nil {
		inv.DueDate = req.DueDate.UTC()
	}
	if req.Notes != nil {
		inv.Notes = req.Notes
	}
	if inv.DueDate.Before(inv.IssueDate) {
		return nil, fmt.Errorf("due date before issue date: %w", core.ErrInvalidInput)
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) SetStatus(ctx context.Context, id, status string) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == status {
		return inv, nil
	}
	if !CanTransition(inv.Status, status) {
		return nil, fmt.Errorf("invoice %s to %s: %w", inv.Status, status, core.ErrInvalidTransition)
	}

	previous := inv.Status
	inv.Status = status
	switch {
	case status == StatusPaid:
		paid := s.now().UTC()
		inv.PaidAt = &paid
	case previous == StatusPaid:
		inv.PaidAt = nil
	}

	if err := s.repo.SetStatus(ctx, inv, previous); err != nil {
		return nil, err
	}
	if status == StatusPaid {
		s.record("invoice_paid")
	}
	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !inv.Deletable() {
		return fmt.Errorf("invoice is %s: %w", inv.Status, core.ErrConflict)
	}
	return s.repo.Delete(ctx, id)
}
