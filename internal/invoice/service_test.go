// AngelaMos | 2026
// service_test.go

package invoice

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type memoryRepo struct {
	invoices     map[string]*Invoice
	entries      []BillableEntry
	entryStatus  map[string]string
	entryInvoice map[string]string
}

func newMemoryRepo(entries ...BillableEntry) *memoryRepo {
	m := &memoryRepo{
		invoices:     map[string]*Invoice{},
		entries:      entries,
		entryStatus:  map[string]string{},
		entryInvoice: map[string]string{},
	}
	for _, e := range entries {
		m.entryStatus[e.ID] = "ready_to_bill"
	}
	return m
}

func (m *memoryRepo) Create(_ context.Context, inv *Invoice) error {
	for _, existing := range m.invoices {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return fmt.Errorf("create invoice: %w", core.ErrDuplicateKey)
		}
	}
	for _, it := range inv.Items {
		if it.TimeEntryID != nil && m.entryStatus[*it.TimeEntryID] != "ready_to_bill" {
			return core.ErrConflict
		}
	}
	for _, it := range inv.Items {
		if it.TimeEntryID != nil {
			m.entryStatus[*it.TimeEntryID] = "invoiced"
			m.entryInvoice[*it.TimeEntryID] = inv.ID
		}
	}
	cp := *inv
	m.invoices[inv.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *memoryRepo) Update(_ context.Context, inv *Invoice) error {
	cp := *inv
	m.invoices[inv.ID] = &cp
	return nil
}

func (m *memoryRepo) SetStatus(_ context.Context, inv *Invoice, previous string) error {
	cp := *inv
	m.invoices[inv.ID] = &cp

	for id, invoiceID := range m.entryInvoice {
		if invoiceID != inv.ID {
			continue
		}
		switch {
		case inv.Status == StatusPaid:
			m.entryStatus[id] = "paid"
		case previous == StatusPaid:
			m.entryStatus[id] = "invoiced"
		case inv.Status == StatusCancelled:
			m.entryStatus[id] = "ready_to_bill"
			delete(m.entryInvoice, id)
		}
	}
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	delete(m.invoices, id)
	return nil
}

func (m *memoryRepo) List(context.Context, ListParams, core.PageParams) ([]Invoice, int, error) {
	return nil, 0, nil
}

func (m *memoryRepo) NextNumber(_ context.Context, pattern string) (int, error) {
	prefix := strings.TrimSuffix(pattern, "%")
	highest := 0
	for _, inv := range m.invoices {
		var n int
		if _, err := fmt.Sscanf(strings.TrimPrefix(inv.InvoiceNumber, prefix), "%d", &n); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

func (m *memoryRepo) BillableEntries(_ context.Context, _ string, caseID *string) ([]BillableEntry, error) {
	var out []BillableEntry
	for _, e := range m.entries {
		if m.entryStatus[e.ID] != "ready_to_bill" {
			continue
		}
		if caseID != nil && e.CaseID != *caseID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

var issued = time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	s := NewService(repo, Settings{
		TaxRate:          decimal.RequireFromString("0.0825"),
		PaymentTermsDays: 30,
	}, nil)
	s.now = func() time.Time { return issued }
	return s
}

func entry(caseID string, minutes int, rate string) BillableEntry {
	return BillableEntry{
		ID:              uuid.NewString(),
		CaseID:          caseID,
		Activity:        "Research",
		StartTime:       issued.Add(-48 * time.Hour),
		RoundedDuration: minutes,
		HourlyRate:      decimal.RequireFromString(rate),
	}
}

func TestGenerateBillsReadyEntries(t *testing.T) {
	caseID := uuid.NewString()
	repo := newMemoryRepo(
		entry(caseID, 126, "250"),
		entry(caseID, 6, "250"),
	)
	svc := newTestService(repo)

	inv, err := svc.Generate(context.Background(), GenerateInvoiceRequest{ClientID: uuid.NewString()})
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-0001", inv.InvoiceNumber)
	assert.Equal(t, StatusDraft, inv.Status)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "2.1", inv.Items[0].Quantity.String())
	assert.Equal(t, "525", inv.Items[0].Amount.String())
	assert.Equal(t, "25", inv.Items[1].Amount.String())

	assert.Equal(t, "550", inv.Subtotal.String())
	assert.Equal(t, "45.38", inv.TaxAmount.String())
	assert.Equal(t, "595.38", inv.Total.String())
	assert.True(t, inv.Total.Equal(inv.Subtotal.Add(inv.TaxAmount)))
	assert.Equal(t, issued.AddDate(0, 0, 30), inv.DueDate)

	for _, status := range repo.entryStatus {
		assert.Equal(t, "invoiced", status)
	}
}

func TestGenerateWithNothingToBill(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Generate(context.Background(), GenerateInvoiceRequest{ClientID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrNothingToBill)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestGenerateNarrowsToCase(t *testing.T) {
	caseA, caseB := uuid.NewString(), uuid.NewString()
	repo := newMemoryRepo(entry(caseA, 60, "100"), entry(caseB, 60, "100"))
	svc := newTestService(repo)

	inv, err := svc.Generate(context.Background(), GenerateInvoiceRequest{
		ClientID: uuid.NewString(),
		CaseID:   &caseA,
	})
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)

	second, err := svc.Generate(context.Background(), GenerateInvoiceRequest{ClientID: uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0002", second.InvoiceNumber)
	require.Len(t, second.Items, 1)
}

func TestCreateManualInvoice(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	zero := decimal.Zero

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		ClientID: uuid.NewString(),
		TaxRate:  &zero,
		Items: []ItemRequest{
			{Description: "Filing fee", Quantity: decimal.NewFromInt(1), Rate: decimal.RequireFromString("435")},
			{Description: "Courier", Quantity: decimal.RequireFromString("2.5"), Rate: decimal.RequireFromString("18.333")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "45.83", inv.Items[1].Amount.String())
	assert.Equal(t, "480.83", inv.Total.String())
	assert.True(t, inv.TaxAmount.IsZero())
}

func TestCreateRejectsBadTaxRate(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	rate := decimal.NewFromInt(8)

	_, err := svc.Create(context.Background(), CreateInvoiceRequest{
		ClientID: uuid.NewString(),
		TaxRate:  &rate,
		Items:    []ItemRequest{{Description: "x", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestPaidInvoicePaysEntries(t *testing.T) {
	repo := newMemoryRepo(entry(uuid.NewString(), 30, "300"))
	svc := newTestService(repo)
	ctx := context.Background()

	inv, err := svc.Generate(ctx, GenerateInvoiceRequest{ClientID: uuid.NewString()})
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, inv.ID, StatusPaid)
	require.ErrorIs(t, err, core.ErrInvalidTransition)

	_, err = svc.SetStatus(ctx, inv.ID, StatusSent)
	require.NoError(t, err)

	paid, err := svc.SetStatus(ctx, inv.ID, StatusPaid)
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, issued, *paid.PaidAt)
	for _, status := range repo.entryStatus {
		assert.Equal(t, "paid", status)
	}

	reversed, err := svc.SetStatus(ctx, inv.ID, StatusSent)
	require.NoError(t, err)
	assert.Nil(t, reversed.PaidAt)
	for _, status := range repo.entryStatus {
		assert.Equal(t, "invoiced", status)
	}
}

func TestCancelReleasesEntriesForRebilling(t *testing.T) {
	repo := newMemoryRepo(entry(uuid.NewString(), 30, "300"))
	svc := newTestService(repo)
	ctx := context.Background()

	inv, err := svc.Generate(ctx, GenerateInvoiceRequest{ClientID: uuid.NewString()})
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, inv.ID, StatusCancelled)
	require.NoError(t, err)

	again, err := svc.Generate(ctx, GenerateInvoiceRequest{ClientID: uuid.NewString()})
	require.NoError(t, err)
	assert.Len(t, again.Items, 1)
}

func TestDeleteOnlyDraftOrCancelled(t *testing.T) {
	repo := newMemoryRepo(entry(uuid.NewString(), 30, "300"))
	svc := newTestService(repo)
	ctx := context.Background()

	inv, err := svc.Generate(ctx, GenerateInvoiceRequest{ClientID: uuid.NewString()})
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, inv.ID, StatusSent)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, inv.ID), core.ErrConflict)

	_, err = svc.SetStatus(ctx, inv.ID, StatusCancelled)
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, inv.ID))
}
