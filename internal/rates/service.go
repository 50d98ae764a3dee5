// AngelaMos | 2026
// service.go

package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

const (
	SourceRateTable = "rate_table"
	SourceFallback  = "default"
)

type Service struct {
	repo     Repository
	fallback decimal.Decimal
	now      func() time.Time
}

// NewService takes the rate used when no rate table row applies.
func NewService(repo Repository, fallback decimal.Decimal) *Service {
	return &Service{repo: repo, fallback: fallback, now: time.Now}
}

func (s *Service) CreateTable(ctx context.Context, req CreateRateTableRequest) (*RateTable, error) {
	if req.HourlyRate.IsNegative() {
		return nil, fmt.Errorf("hourly rate must not be negative: %w", core.ErrInvalidInput)
	}

	rt := &RateTable{
		ID:            uuid.New().String(),
		Name:          req.Name,
		AttorneyID:    req.AttorneyID,
		ClientID:      req.ClientID,
		ActivityType:  req.ActivityType,
		HourlyRate:    req.HourlyRate.Round(2),
		IsDefault:     req.IsDefault,
		EffectiveFrom: s.now().UTC(),
	}
	if req.EffectiveFrom != nil {
		rt.EffectiveFrom = *req.EffectiveFrom
	}

	if err := s.repo.CreateTable(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Service) GetTable(ctx context.Context, id string) (*RateTable, error) {
	return s.repo.GetTable(ctx, id)
}

func (s *Service) ListTables(
	ctx context.Context,
	params ListTablesParams,
	page core.PageParams,
) ([]RateTable, int, error) {
	return s.repo.ListTables(ctx, params, page)
}

func (s *Service) UpdateTable(ctx context.Context, id string, req UpdateRateTableRequest) (*RateTable, error) {
	rt, err := s.repo.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rt.Name = *req.Name
	}
	if req.AttorneyID != nil {
		rt.AttorneyID = req.AttorneyID
	}
	if req.ClientID != nil {
		rt.ClientID = req.ClientID
	}
	if req.ActivityType != nil {
		rt.ActivityType = req.ActivityType
	}
	if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() {
			return nil, fmt.Errorf("hourly rate must not be negative: %w", core.ErrInvalidInput)
		}
		rt.HourlyRate = req.HourlyRate.Round(2)
	}
	if req.IsDefault != nil {
		rt.IsDefault = *req.IsDefault
	}
	if req.EffectiveFrom != nil {
		rt.EffectiveFrom = *req.EffectiveFrom
	}

	if err := s.repo.UpdateTable(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Service) DeleteTable(ctx context.Context, id string) error {
	return s.repo.DeleteTable(ctx, id)
}

// Resolve picks the most specific effective rate row for q. Among rows of
// equal specificity the most recently effective wins. With no match the
// configured fallback rate applies.
func (s *Service) Resolve(ctx context.Context, q ResolveQuery) (*ResolveResponse, error) {
	if q.ClientID == "" && q.CaseID != "" {
		clientID, err := s.repo.ClientForCase(ctx, q.CaseID)
		if err != nil {
			return nil, err
		}
		q.ClientID = clientID
	}

	candidates, err := s.repo.Candidates(ctx, q, s.now())
	if err != nil {
		return nil, err
	}

	var best *RateTable
	bestRank := 0
	for i := range candidates {
		rank := candidates[i].specificity(q)
		if rank > bestRank {
			best = &candidates[i]
			bestRank = rank
		}
	}

	if best == nil {
		return &ResolveResponse{HourlyRate: s.fallback, Source: SourceFallback}, nil
	}
	return &ResolveResponse{
		HourlyRate:  best.HourlyRate,
		RateTableID: &best.ID,
		Source:      SourceRateTable,
	}, nil
}

// ResolveRate is Resolve for a time entry on caseID.
func (s *Service) ResolveRate(
	ctx context.Context,
	attorneyID, caseID, activity string,
) (decimal.Decimal, error) {
	res, err := s.Resolve(ctx, ResolveQuery{
		AttorneyID: attorneyID,
		CaseID:     caseID,
		Activity:   activity,
	})
	if err != nil {
		return decimal.Zero, err
	}
	return res.HourlyRate, nil
}

func (s *Service) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*ActivityTemplate, error) {
	if req.HourlyRate != nil && req.HourlyRate.IsNegative() {
		return nil, fmt.Errorf("hourly rate must not be negative: %w", core.ErrInvalidInput)
	}

	t := &ActivityTemplate{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Activity:        req.Activity,
		Description:     req.Description,
		UTBMSCode:       req.UTBMSCode,
		DefaultDuration: req.DefaultDuration,
		HourlyRate:      req.HourlyRate,
		AttorneyID:      req.AttorneyID,
		IsActive:        true,
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) GetTemplate(ctx context.Context, id string) (*ActivityTemplate, error) {
	return s.repo.GetTemplate(ctx, id)
}

func (s *Service) ListTemplates(
	ctx context.Context,
	params ListTemplatesParams,
	page core.PageParams,
) ([]ActivityTemplate, int, error) {
	return s.repo.ListTemplates(ctx, params, page)
}

func (s *Service) UpdateTemplate(ctx context.Context, id string, req UpdateTemplateRequest) (*ActivityTemplate, error) {
	t, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Activity != nil {
		t.Activity = *req.Activity
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.UTBMSCode != nil {
		t.UTBMSCode = req.UTBMSCode
	}
	if req.DefaultDuration != nil {
		t.DefaultDuration = req.DefaultDuration
	}
	if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() {
			return nil, fmt.Errorf("hourly rate must not be negative: %w", core.ErrInvalidInput)
		}
		t.HourlyRate = req.HourlyRate
	}
	if req.AttorneyID != nil {
		t.AttorneyID = req.AttorneyID
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	return s.repo.DeleteTemplate(ctx, id)
}
