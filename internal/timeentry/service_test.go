// AngelaMos | 2026
// service_test.go

package timeentry

import (
	"context"
	"errors"
	"maps"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/calendar"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type memoryRepo struct {
	rows map[string]*TimeEntry
}

func (m *memoryRepo) Create(_ context.Context, e *TimeEntry) error {
	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*TimeEntry, error) {
	e, ok := m.rows[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memoryRepo) GetForUpdate(ctx context.Context, id string) (*TimeEntry, error) {
	return m.GetByID(ctx, id)
}

func (m *memoryRepo) Update(_ context.Context, e *TimeEntry) error {
	if _, ok := m.rows[e.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memoryRepo) List(context.Context, ListParams, core.PageParams) ([]TimeEntry, int, error) {
	return nil, 0, nil
}

func (m *memoryRepo) Active(_ context.Context, attorneyID string) (*TimeEntry, error) {
	for _, e := range m.rows {
		if e.AttorneyID == attorneyID && e.EndTime == nil {
			cp := *e
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

type memoryEvents struct {
	rows map[string]*calendar.Event
	fail error
}

func (m *memoryEvents) Create(_ context.Context, e *calendar.Event) error {
	if m.fail != nil {
		return m.fail
	}
	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

// snapshotUnitOfWork restores both stores when fn fails, which is what a
// rolled back transaction looks like to the caller.
type snapshotUnitOfWork struct {
	entries *memoryRepo
	events  *memoryEvents
}

func (u *snapshotUnitOfWork) Do(_ context.Context, fn func(Store) error) error {
	entries := make(map[string]*TimeEntry, len(u.entries.rows))
	for k, v := range u.entries.rows {
		cp := *v
		entries[k] = &cp
	}
	events := maps.Clone(u.events.rows)

	if err := fn(Store{Entries: u.entries, Events: u.events}); err != nil {
		u.entries.rows = entries
		u.events.rows = events
		return err
	}
	return nil
}

type fixedRate struct {
	rate  decimal.Decimal
	calls int
}

func (f *fixedRate) ResolveRate(context.Context, string, string, string) (decimal.Decimal, error) {
	f.calls++
	return f.rate, nil
}

type counter map[string]int

func (c counter) Record(event string) { c[event]++ }

type harness struct {
	svc      *Service
	entries  *memoryRepo
	events   *memoryEvents
	rates    *fixedRate
	recorded counter
	clock    time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		entries:  &memoryRepo{rows: map[string]*TimeEntry{}},
		events:   &memoryEvents{rows: map[string]*calendar.Event{}},
		rates:    &fixedRate{rate: decimal.NewFromInt(250)},
		recorded: counter{},
		clock:    time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC),
	}
	uow := &snapshotUnitOfWork{entries: h.entries, events: h.events}
	h.svc = NewService(h.entries, uow, h.rates, h.recorded, 6)
	h.svc.now = func() time.Time { return h.clock }
	return h
}

func (h *harness) advance(d time.Duration) { h.clock = h.clock.Add(d) }

func (h *harness) startTimer(t *testing.T) *TimeEntry {
	t.Helper()
	start := h.clock
	e, err := h.svc.Create(context.Background(), uuid.NewString(), CreateTimeEntryRequest{
		CaseID:    uuid.NewString(),
		Activity:  "Draft motion",
		StartTime: &start,
	})
	require.NoError(t, err)
	require.Equal(t, TimerRunning, e.TimerState())
	return e
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusDraft, StatusReadyToBill, true},
		{StatusReadyToBill, StatusInvoiced, true},
		{StatusInvoiced, StatusPaid, true},
		{StatusReadyToBill, StatusDraft, true},
		{StatusInvoiced, StatusReadyToBill, true},
		{StatusPaid, StatusInvoiced, true},
		{StatusDraft, StatusDraft, true},
		{StatusDraft, StatusInvoiced, false},
		{StatusDraft, StatusPaid, false},
		{StatusReadyToBill, StatusPaid, false},
		{StatusPaid, StatusDraft, false},
		{StatusInvoiced, StatusDraft, false},
		{StatusDraft, "archived", false},
		{"unknown", StatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusChainThroughService(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	e := h.startTimer(t)
	h.advance(30 * time.Minute)
	_, err := h.svc.Stop(ctx, e.ID)
	require.NoError(t, err)

	_, err = h.svc.SetStatus(ctx, e.ID, StatusInvoiced)
	require.ErrorIs(t, err, core.ErrInvalidTransition)

	for _, status := range []string{StatusReadyToBill, StatusInvoiced, StatusPaid} {
		got, err := h.svc.SetStatus(ctx, e.ID, status)
		require.NoError(t, err, status)
		assert.Equal(t, status, got.Status)
	}
}

func TestRunningTimerCannotLeaveDraft(t *testing.T) {
	h := newHarness(t)

	e := h.startTimer(t)
	_, err := h.svc.SetStatus(context.Background(), e.ID, StatusReadyToBill)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestStopSubtractsPausedTime(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	e := h.startTimer(t)
	h.advance(20 * time.Minute)

	_, err := h.svc.Pause(ctx, e.ID)
	require.NoError(t, err)
	h.advance(15 * time.Minute)

	resumed, err := h.svc.Resume(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 15*60, resumed.PausedDuration)
	assert.False(t, resumed.IsPaused)

	h.advance(17 * time.Minute)
	stopped, err := h.svc.Stop(ctx, e.ID)
	require.NoError(t, err)

	require.NotNil(t, stopped.Duration)
	require.NotNil(t, stopped.RoundedDuration)
	assert.Equal(t, 37, *stopped.Duration)
	assert.Equal(t, 42, *stopped.RoundedDuration)
	assert.Equal(t, TimerStopped, stopped.TimerState())
	assert.Equal(t, 1, h.recorded["timer_stopped"])
}

func TestStopWhilePausedCountsOpenPause(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	e := h.startTimer(t)
	h.advance(10 * time.Minute)
	_, err := h.svc.Pause(ctx, e.ID)
	require.NoError(t, err)
	h.advance(50 * time.Minute)

	stopped, err := h.svc.Stop(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, *stopped.Duration)
	assert.Equal(t, 12, *stopped.RoundedDuration)
	assert.False(t, stopped.IsPaused)
	assert.Nil(t, stopped.PausedAt)
}

func TestEndTimeOnPausedTimerCountsOpenPause(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	e := h.startTimer(t)
	h.advance(10 * time.Minute)
	_, err := h.svc.Pause(ctx, e.ID)
	require.NoError(t, err)
	h.advance(50 * time.Minute)

	end := h.clock
	updated, err := h.svc.Update(ctx, e.ID, UpdateTimeEntryRequest{EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, 50*60, updated.PausedDuration)
	assert.Equal(t, 10, *updated.Duration)
	assert.False(t, updated.IsPaused)
	assert.Nil(t, updated.PausedAt)
}

func TestFutureEndTimeOnPausedTimerStopsPauseAtNow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	e := h.startTimer(t)
	h.advance(10 * time.Minute)
	_, err := h.svc.Pause(ctx, e.ID)
	require.NoError(t, err)
	h.advance(20 * time.Minute)

	end := h.clock.Add(30 * time.Minute)
	updated, err := h.svc.Update(ctx, e.ID, UpdateTimeEntryRequest{EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, 20*60, updated.PausedDuration)
	assert.Equal(t, 40, *updated.Duration)
}

func TestStopLinksCalendarEvent(t *testing.T) {
	h := newHarness(t)

	e := h.startTimer(t)
	h.advance(45 * time.Minute)
	stopped, err := h.svc.Stop(context.Background(), e.ID)
	require.NoError(t, err)

	require.NotNil(t, stopped.CalendarEventID)
	event, ok := h.events.rows[*stopped.CalendarEventID]
	require.True(t, ok)
	assert.Equal(t, e.StartTime, event.StartTime)
	assert.Equal(t, *stopped.EndTime, event.EndTime)
	require.NotNil(t, event.SourceID)
	assert.Equal(t, e.ID, *event.SourceID)
	assert.Equal(t, calendar.SourceTimeEntry, *event.SourceType)

	stored := h.entries.rows[e.ID]
	require.NotNil(t, stored.CalendarEventID)
	assert.Equal(t, *stopped.CalendarEventID, *stored.CalendarEventID)
}

func TestStopRollsBackWhenEventFails(t *testing.T) {
	h := newHarness(t)

	e := h.startTimer(t)
	h.advance(45 * time.Minute)
	h.events.fail = errors.New("calendar_events: connection reset")

	_, err := h.svc.Stop(context.Background(), e.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	stored := h.entries.rows[e.ID]
	assert.Nil(t, stored.EndTime)
	assert.Nil(t, stored.Duration)
	assert.Nil(t, stored.CalendarEventID)
	assert.Empty(t, h.events.rows)
	assert.Zero(t, h.recorded["timer_stopped"])

	h.events.fail = nil
	stopped, err := h.svc.Stop(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, *stopped.Duration)
}

func TestTimerStateGuards(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	e := h.startTimer(t)

	_, err := h.svc.Resume(ctx, e.ID)
	assert.ErrorIs(t, err, ErrTimerNotPaused)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	_, err = h.svc.Pause(ctx, e.ID)
	require.NoError(t, err)
	_, err = h.svc.Pause(ctx, e.ID)
	assert.ErrorIs(t, err, ErrTimerNotRunning)

	_, err = h.svc.Stop(ctx, e.ID)
	require.NoError(t, err)
	_, err = h.svc.Stop(ctx, e.ID)
	assert.ErrorIs(t, err, ErrTimerStopped)
}

func TestCreateCompletedEntry(t *testing.T) {
	h := newHarness(t)

	start := time.Date(2026, 5, 1, 13, 0, 0, 0, time.UTC)
	end := start.Add(61 * time.Minute)
	rate := decimal.RequireFromString("310.499")

	e, err := h.svc.Create(context.Background(), uuid.NewString(), CreateTimeEntryRequest{
		CaseID:     uuid.NewString(),
		Activity:   "Client call",
		StartTime:  &start,
		EndTime:    &end,
		HourlyRate: &rate,
	})
	require.NoError(t, err)
	assert.Equal(t, 61, *e.Duration)
	assert.Equal(t, 66, *e.RoundedDuration)
	assert.Equal(t, "310.5", e.HourlyRate.String())
	assert.Zero(t, h.rates.calls)
	assert.Equal(t, 1, h.recorded["time_entry_recorded"])
}

func TestCreateResolvesRateWhenOmitted(t *testing.T) {
	h := newHarness(t)

	e := h.startTimer(t)
	assert.True(t, e.HourlyRate.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 1, h.rates.calls)
}

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	h := newHarness(t)

	start := h.clock
	end := start.Add(-time.Minute)
	_, err := h.svc.Create(context.Background(), uuid.NewString(), CreateTimeEntryRequest{
		CaseID:    uuid.NewString(),
		Activity:  "Backwards",
		StartTime: &start,
		EndTime:   &end,
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestBatchStatusIsAllOrNothing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	var ids []string
	for range 3 {
		e := h.startTimer(t)
		h.advance(12 * time.Minute)
		_, err := h.svc.Stop(ctx, e.ID)
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	res, err := h.svc.BatchStatus(ctx, BatchStatusRequest{IDs: ids, Status: StatusReadyToBill})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Updated)

	_, err = h.svc.SetStatus(ctx, ids[2], StatusDraft)
	require.NoError(t, err)

	_, err = h.svc.BatchStatus(ctx, BatchStatusRequest{IDs: ids, Status: StatusInvoiced})
	require.ErrorIs(t, err, core.ErrInvalidTransition)

	for _, id := range ids[:2] {
		assert.Equal(t, StatusReadyToBill, h.entries.rows[id].Status)
	}
	assert.Equal(t, StatusDraft, h.entries.rows[ids[2]].Status)
}

func TestInvoicedEntryIsLocked(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	e := h.startTimer(t)
	h.advance(30 * time.Minute)
	_, err := h.svc.Stop(ctx, e.ID)
	require.NoError(t, err)
	_, err = h.svc.SetStatus(ctx, e.ID, StatusReadyToBill)
	require.NoError(t, err)
	_, err = h.svc.SetStatus(ctx, e.ID, StatusInvoiced)
	require.NoError(t, err)

	rate := decimal.NewFromInt(1)
	_, err = h.svc.Update(ctx, e.ID, UpdateTimeEntryRequest{HourlyRate: &rate})
	assert.ErrorIs(t, err, core.ErrConflict)

	assert.ErrorIs(t, h.svc.Delete(ctx, e.ID), core.ErrConflict)

	note := "reviewed"
	updated, err := h.svc.Update(ctx, e.ID, UpdateTimeEntryRequest{Description: &note})
	require.NoError(t, err)
	assert.Equal(t, "reviewed", *updated.Description)
}

func TestActiveReturnsNilWithoutTimer(t *testing.T) {
	h := newHarness(t)

	e, err := h.svc.Active(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, e)
}
