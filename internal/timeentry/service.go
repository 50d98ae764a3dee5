// AngelaMos | 2026
// service.go

package timeentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/billing"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/calendar"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

var (
	ErrTimerNotRunning = errors.New("timer is not running")
	ErrTimerNotPaused  = errors.New("timer is not paused")
	ErrTimerStopped    = errors.New("timer already stopped")
	ErrEntryLocked     = fmt.Errorf("time entry is locked by an invoice: %w", core.ErrConflict)
)

type RateResolver interface {
	ResolveRate(ctx context.Context, attorneyID, caseID, activity string) (decimal.Decimal, error)
}

type Recorder interface {
	Record(event string)
}

type Service struct {
	repo      Repository
	uow       UnitOfWork
	rates     RateResolver
	recorder  Recorder
	increment int
	now       func() time.Time
}

func NewService(
	repo Repository,
	uow UnitOfWork,
	rates RateResolver,
	recorder Recorder,
	increment int,
) *Service {
	return &Service{
		repo:      repo,
		uow:       uow,
		rates:     rates,
		recorder:  recorder,
		increment: increment,
		now:       time.Now,
	}
}

func (s *Service) record(event string) {
	if s.recorder != nil {
		s.recorder.Record(event)
	}
}

func (s *Service) computeDurations(e *TimeEntry) {
	minutes := billing.NetMinutes(e.StartTime, *e.EndTime, e.PausedDuration)
	rounded := billing.RoundToIncrement(minutes, s.increment)
	e.Duration = &minutes
	e.RoundedDuration = &rounded
}

// Create records a finished entry when both times are given, otherwise it
// starts a timer for the attorney.
func (s *Service) Create(ctx context.Context, callerID string, req CreateTimeEntryRequest) (*TimeEntry, error) {
	e := &TimeEntry{
		ID:          uuid.New().String(),
		CaseID:      req.CaseID,
		AttorneyID:  callerID,
		Activity:    req.Activity,
		Description: req.Description,
		UTBMSCode:   req.UTBMSCode,
		StartTime:   s.now().UTC(),
		Billable:    true,
		Status:      StatusDraft,
	}
	if req.AttorneyID != nil {
		e.AttorneyID = *req.AttorneyID
	}
	if req.StartTime != nil {
		e.StartTime = req.StartTime.UTC()
	}
	if req.Billable != nil {
		e.Billable = *req.Billable
	}

	if req.EndTime != nil {
		end := req.EndTime.UTC()
		if end.Before(e.StartTime) {
			return nil, fmt.Errorf("end time before start time: %w", core.ErrInvalidInput)
		}
		e.EndTime = &end
		s.computeDurations(e)
	}

	switch {
	case req.HourlyRate != nil:
		if req.HourlyRate.IsNegative() {
			return nil, fmt.Errorf("hourly rate must not be negative: %w", core.ErrInvalidInput)
		}
		e.HourlyRate = req.HourlyRate.Round(2)
	case s.rates != nil:
		rate, err := s.rates.ResolveRate(ctx, e.AttorneyID, e.CaseID, e.Activity)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, fmt.Errorf("case %s: %w", e.CaseID, core.ErrInvalidReference)
			}
			return nil, err
		}
		e.HourlyRate = rate
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	if e.EndTime == nil {
		s.record("timer_started")
	} else {
		s.record("time_entry_recorded")
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id string) (*TimeEntry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]TimeEntry, int, error) {
	return s.repo.List(ctx, params, page)
}

// Active returns the caller's running or paused timer, or nil.
func (s *Service) Active(ctx context.Context, attorneyID string) (*TimeEntry, error) {
	e, err := s.repo.Active(ctx, attorneyID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	return e, err
}

// Update edits entry details. Billing status moves only through SetStatus
// and BatchStatus. An end time on a paused timer closes the open pause at
// that end time, or now if the end lies in the future.
func (s *Service) Update(ctx context.Context, id string, req UpdateTimeEntryRequest) (*TimeEntry, error) {
	var updated *TimeEntry
	err := s.uow.Do(ctx, func(st Store) error {
		e, err := st.Entries.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if isLocked(e.Status) && touchesBilledFields(req) {
			return fmt.Errorf("update time entry %s: %w", id, ErrEntryLocked)
		}

		if req.CaseID != nil {
			e.CaseID = *req.CaseID
		}
		if req.Activity != nil {
			e.Activity = *req.Activity
		}
		if req.Description != nil {
			e.Description = req.Description
		}
		if req.UTBMSCode != nil {
			e.UTBMSCode = req.UTBMSCode
		}
		if req.StartTime != nil {
			e.StartTime = req.StartTime.UTC()
		}
		if req.EndTime != nil {
			end := req.EndTime.UTC()
			if e.IsPaused && e.PausedAt != nil {
				until := end
				if now := s.now().UTC(); now.Before(until) {
					until = now
				}
				e.PausedDuration += billing.PausedSecondsSince(*e.PausedAt, until)
			}
			e.EndTime = &end
			e.IsPaused = false
			e.PausedAt = nil
		}
		if req.HourlyRate != nil {
			if req.HourlyRate.IsNegative() {
				return fmt.Errorf("hourly rate must not be negative: %w", core.ErrInvalidInput)
			}
			e.HourlyRate = req.HourlyRate.Round(2)
		}
		if req.Billable != nil {
			e.Billable = *req.Billable
		}

		if e.EndTime != nil {
			if e.EndTime.Before(e.StartTime) {
				return fmt.Errorf("end time before start time: %w", core.ErrInvalidInput)
			}
			s.computeDurations(e)
		}

		if err := st.Entries.Update(ctx, e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if isLocked(e.Status) {
		return fmt.Errorf("delete time entry %s: %w", id, ErrEntryLocked)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Pause(ctx context.Context, id string) (*TimeEntry, error) {
	return s.mutateTimer(ctx, id, func(e *TimeEntry, now time.Time) error {
		if e.TimerState() != TimerRunning {
			return ErrTimerNotRunning
		}
		e.IsPaused = true
		e.PausedAt = &now
		return nil
	})
}

func (s *Service) Resume(ctx context.Context, id string) (*TimeEntry, error) {
	return s.mutateTimer(ctx, id, func(e *TimeEntry, now time.Time) error {
		if e.TimerState() != TimerPaused {
			return ErrTimerNotPaused
		}
		if e.PausedAt != nil {
			e.PausedDuration += billing.PausedSecondsSince(*e.PausedAt, now)
		}
		e.IsPaused = false
		e.PausedAt = nil
		return nil
	})
}

func (s *Service) mutateTimer(
	ctx context.Context,
	id string,
	fn func(e *TimeEntry, now time.Time) error,
) (*TimeEntry, error) {
	var out *TimeEntry
	err := s.uow.Do(ctx, func(st Store) error {
		e, err := st.Entries.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(e, s.now().UTC()); err != nil {
			return fmt.Errorf("time entry %s: %w: %w", id, err, core.ErrInvalidTransition)
		}
		if err := st.Entries.Update(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Stop ends the timer, records a calendar event for the worked period and
// links the entry to it. The three writes share one transaction.
func (s *Service) Stop(ctx context.Context, id string) (*TimeEntry, error) {
	var stopped *TimeEntry
	err := s.uow.Do(ctx, func(st Store) error {
		e, err := st.Entries.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if e.TimerState() == TimerStopped {
			return fmt.Errorf("time entry %s: %w: %w", id, ErrTimerStopped, core.ErrInvalidTransition)
		}

		now := s.now().UTC()
		if e.IsPaused && e.PausedAt != nil {
			e.PausedDuration += billing.PausedSecondsSince(*e.PausedAt, now)
		}
		e.IsPaused = false
		e.PausedAt = nil
		e.EndTime = &now
		s.computeDurations(e)

		if err := st.Entries.Update(ctx, e); err != nil {
			return err
		}

		event := workedPeriodEvent(e)
		if err := st.Events.Create(ctx, event); err != nil {
			return fmt.Errorf("record calendar event for time entry %s: %w", id, err)
		}

		e.CalendarEventID = &event.ID
		if err := st.Entries.Update(ctx, e); err != nil {
			return fmt.Errorf("link calendar event to time entry %s: %w", id, err)
		}

		stopped = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record("timer_stopped")
	return stopped, nil
}

func workedPeriodEvent(e *TimeEntry) *calendar.Event {
	source := calendar.SourceTimeEntry
	sourceID := e.ID
	caseID := e.CaseID
	attorneyID := e.AttorneyID

	return &calendar.Event{
		ID:          uuid.New().String(),
		Title:       e.Activity,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     *e.EndTime,
		EventType:   calendar.TypeMeeting,
		Status:      calendar.StatusCompleted,
		SourceType:  &source,
		SourceID:    &sourceID,
		CaseID:      &caseID,
		AttorneyID:  &attorneyID,
	}
}

func (s *Service) SetStatus(ctx context.Context, id, status string) (*TimeEntry, error) {
	res, err := s.BatchStatus(ctx, BatchStatusRequest{IDs: []string{id}, Status: status})
	if err != nil {
		return nil, err
	}
	return &res.Entries[0], nil
}

// BatchStatus moves every listed entry to status. One rejected transition
// rolls back the whole batch.
func (s *Service) BatchStatus(ctx context.Context, req BatchStatusRequest) (*BatchStatusResponse, error) {
	res := &BatchStatusResponse{Entries: make([]TimeEntry, 0, len(req.IDs))}

	err := s.uow.Do(ctx, func(st Store) error {
		seen := make(map[string]bool, len(req.IDs))
		for _, id := range req.IDs {
			if seen[id] {
				continue
			}
			seen[id] = true

			e, err := st.Entries.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if e.Status != req.Status {
				if err := applyStatus(e, req.Status); err != nil {
					return fmt.Errorf("time entry %s: %w", id, err)
				}
				if err := st.Entries.Update(ctx, e); err != nil {
					return err
				}
				res.Updated++
			}
			res.Entries = append(res.Entries, *e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// applyStatus enforces the billing chain. Entries leave draft only once
// their timer has stopped, and drop their invoice link when moved back
// below invoiced.
func applyStatus(e *TimeEntry, to string) error {
	if e.Status == to {
		return nil
	}
	if !CanTransition(e.Status, to) {
		return fmt.Errorf("%s to %s: %w", e.Status, to, core.ErrInvalidTransition)
	}
	if to != StatusDraft && e.TimerState() != TimerStopped {
		return fmt.Errorf("timer still running: %w", core.ErrInvalidTransition)
	}

	if statusOrder[to] < statusOrder[StatusInvoiced] {
		e.InvoiceID = nil
	}
	e.Status = to
	return nil
}

func isLocked(status string) bool {
	return status == StatusInvoiced || status == StatusPaid
}

func touchesBilledFields(req UpdateTimeEntryRequest) bool {
	return req.CaseID != nil || req.StartTime != nil || req.EndTime != nil ||
		req.HourlyRate != nil || req.Billable != nil
}
