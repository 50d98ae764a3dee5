// AngelaMos | 2026
// service.go

package cases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/billing"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

// numberAttempts bounds retries when two creates race for the same
// generated case number.
const numberAttempts = 3

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateCaseRequest) (*Case, error) {
	c := &Case{
		ID:                 uuid.New().String(),
		Title:              req.Title,
		Description:        req.Description,
		CaseType:           req.CaseType,
		Status:             req.Status,
		Priority:           req.Priority,
		ClientID:           req.ClientID,
		AssignedAttorneyID: req.AssignedAttorneyID,
		StartDate:          req.StartDate,
		CloseDate:          req.CloseDate,
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	if req.Progress != nil {
		c.Progress = *req.Progress
	}

	if req.CaseNumber != nil {
		c.CaseNumber = *req.CaseNumber
		if err := s.repo.Create(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}

	year := s.now().Year()
	var err error
	for range numberAttempts {
		var next int
		next, err = s.repo.NextNumber(ctx, billing.SequencePattern(billing.CasePrefix, year))
		if err != nil {
			return nil, err
		}
		c.CaseNumber = billing.FormatSequence(billing.CasePrefix, year, next)

		err = s.repo.Create(ctx, c)
		if !errors.Is(err, core.ErrDuplicateKey) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Case, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Case, int, error) {
	return s.repo.List(ctx, params, page)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateCaseRequest) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.CaseType != nil {
		c.CaseType = *req.CaseType
	}
	if req.Status != nil {
		c.Status = *req.Status
		if c.Status == StatusClosed && c.CloseDate == nil && req.CloseDate == nil {
			closed := s.now().UTC()
			c.CloseDate = &closed
		}
	}
	if req.Priority != nil {
		c.Priority = *req.Priority
	}
	if req.Progress != nil {
		c.Progress = *req.Progress
	}
	if req.ClientID != nil {
		c.ClientID = *req.ClientID
	}
	if req.AssignedAttorneyID != nil {
		c.AssignedAttorneyID = req.AssignedAttorneyID
	}
	if req.StartDate != nil {
		c.StartDate = req.StartDate
	}
	if req.CloseDate != nil {
		c.CloseDate = req.CloseDate
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
