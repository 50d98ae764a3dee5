// AngelaMos | 2026
// service_test.go

package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type memoryRepo struct {
	rows map[string]*Event
}

func (m *memoryRepo) Create(_ context.Context, e *Event) error {
	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*Event, error) {
	e, ok := m.rows[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memoryRepo) Update(_ context.Context, e *Event) error {
	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memoryRepo) List(context.Context, ListParams, core.PageParams) ([]Event, int, error) {
	return nil, 0, nil
}

func TestCreateDefaultsToScheduled(t *testing.T) {
	svc := NewService(&memoryRepo{rows: map[string]*Event{}})
	start := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	e, err := svc.Create(context.Background(), CreateEventRequest{
		Title:     "Motion hearing",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		EventType: TypeCourtDate,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, e.Status)
	assert.NotEmpty(t, e.ID)
}

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	start := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	req := CreateEventRequest{
		Title:     "Backwards",
		StartTime: start,
		EndTime:   start.Add(-time.Minute),
		EventType: TypeMeeting,
	}

	err := core.Validate(req)
	require.Error(t, err)
	assert.Contains(t, core.ValidationDetails(err), "endTime")
}

func TestUpdateRejectsEndBeforeStart(t *testing.T) {
	repo := &memoryRepo{rows: map[string]*Event{}}
	svc := NewService(repo)
	start := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	e, err := svc.Create(context.Background(), CreateEventRequest{
		Title:     "Deposition",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		EventType: TypeMeeting,
	})
	require.NoError(t, err)

	earlier := start.Add(-time.Hour)
	_, err = svc.Update(context.Background(), e.ID, UpdateEventRequest{EndTime: &earlier})
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
	assert.Equal(t, start.Add(2*time.Hour), repo.rows[e.ID].EndTime)
}
