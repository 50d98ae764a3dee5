// AngelaMos | 2026
// service.go

package compliance

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, req CreateDeadlineRequest) (*Deadline, error) {
	d := &Deadline{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		DeadlineType: req.DeadlineType,
		Status:       req.Status,
		CaseID:       req.CaseID,
		AttorneyID:   req.AttorneyID,
	}
	if d.Status == "" {
		d.Status = StatusPending
	}
	s.settle(d)

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Deadline, error) {
	return s.repo.GetByID(ctx, id)
}

// List flips pending deadlines whose due date has passed to overdue before
// reading, so the status filter sees current values.
func (s *Service) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Deadline, int, error) {
	if n, err := s.repo.MarkOverdue(ctx, s.now()); err != nil {
		s.logger.WarnContext(ctx, "overdue sweep failed", "error", err)
	} else if n > 0 {
		s.logger.InfoContext(ctx, "deadlines marked overdue", "count", n)
	}
	return s.repo.List(ctx, params, page)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateDeadlineRequest) (*Deadline, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Description != nil {
		d.Description = req.Description
	}
	if req.DueDate != nil {
		d.DueDate = *req.DueDate
	}
	if req.DeadlineType != nil {
		d.DeadlineType = *req.DeadlineType
	}
	if req.Status != nil {
		d.Status = *req.Status
	}
	if req.CaseID != nil {
		d.CaseID = req.CaseID
	}
	if req.AttorneyID != nil {
		d.AttorneyID = req.AttorneyID
	}
	s.settle(d)

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Complete(ctx context.Context, id string) (*Deadline, error) {
	status := StatusCompleted
	return s.Update(ctx, id, UpdateDeadlineRequest{Status: &status})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// settle keeps completed_at in step with the status.
func (s *Service) settle(d *Deadline) {
	if d.Status == StatusCompleted {
		if d.CompletedAt == nil {
			now := s.now()
			d.CompletedAt = &now
		}
		return
	}
	d.CompletedAt = nil
}
