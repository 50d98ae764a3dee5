// AngelaMos | 2026
// service.go

package calendar

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateEventRequest) (*Event, error) {
	e := &Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		EventType:   req.EventType,
		Status:      req.Status,
		CaseID:      req.CaseID,
		ClientID:    req.ClientID,
		AttorneyID:  req.AttorneyID,
	}
	if e.Status == "" {
		e.Status = StatusScheduled
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Event, int, error) {
	return s.repo.List(ctx, params, page)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateEventRequest) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = req.Description
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		e.EndTime = *req.EndTime
	}
	if req.Location != nil {
		e.Location = req.Location
	}
	if req.EventType != nil {
		e.EventType = *req.EventType
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	if req.CaseID != nil {
		e.CaseID = req.CaseID
	}
	if req.ClientID != nil {
		e.ClientID = req.ClientID
	}
	if req.AttorneyID != nil {
		e.AttorneyID = req.AttorneyID
	}

	if e.EndTime.Before(e.StartTime) {
		return nil, fmt.Errorf("end time before start time: %w", core.ErrInvalidInput)
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
