package payment

import (
	"context"
	"errors"
	"testing"

	"fuelpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

var errNetwork = errors.New("connection refused")

type fakeStore struct {
	entries []models.PaymentMethodEntry
	listErr error
	addErr  error
	delErr  error

	listCalls int
	addCalls  int
	delCalls  int
}

func (f *fakeStore) GetShiftPaymentMethods(ctx context.Context, shiftID string) ([]models.PaymentMethodEntry, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeStore) AddShiftPaymentMethods(ctx context.Context, shiftID string, entries []models.PaymentMethodEntry) error {
	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakeStore) DeleteShiftPaymentMethods(ctx context.Context, shiftID string) error {
	f.delCalls++
	if f.delErr != nil {
		return f.delErr
	}
	f.entries = nil
	return nil
}

type fakeShifts struct {
	active     *models.Shift
	lastClosed *models.Shift
}

func (f *fakeShifts) Active() *models.Shift     { return f.active }
func (f *fakeShifts) LastClosed() *models.Shift { return f.lastClosed }

func isValidationError(err error) bool {
	var fe *fiber.Error
	return errors.As(err, &fe) && fe.Code == fiber.StatusBadRequest
}

func TestComputeCashDifference(t *testing.T) {
	shift := &models.Shift{OpeningCash: 100000, ClosingCash: 97500}
	if got := ComputeCashDifference(shift); got != -2500 {
		t.Errorf("ComputeCashDifference = %v, want -2500", got)
	}
}

func TestReconcileKeepsFiguresDistinct(t *testing.T) {
	shift := &models.Shift{ID: "sh-1", OpeningCash: 100000, ClosingCash: 102300}
	entries := []models.PaymentMethodEntry{
		{Kind: models.PaymentMethodCash, Amount: 100000},
		{Kind: models.PaymentMethodCard, Amount: 2000},
	}

	rec := Reconcile(shift, entries)
	if rec.CashDifference != 2300 {
		t.Errorf("cash difference = %v, want 2300", rec.CashDifference)
	}
	if rec.EntriesTotal != 102000 {
		t.Errorf("entries total = %v, want 102000", rec.EntriesTotal)
	}
	if rec.EntriesDelta != 300 {
		t.Errorf("entries delta = %v, want 300", rec.EntriesDelta)
	}
}

func TestAddWithoutActiveShift(t *testing.T) {
	store := &fakeStore{}
	m := NewManager(store, &fakeShifts{})

	entries := []models.PaymentMethodEntry{{Kind: models.PaymentMethodCash, Amount: 100}}
	if _, err := m.Add(context.Background(), "sh-1", entries); !isValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.addCalls != 0 || store.listCalls != 0 {
		t.Errorf("validation failure must issue zero network calls, got add=%d list=%d",
			store.addCalls, store.listCalls)
	}
}

func TestAddValidatesEntries(t *testing.T) {
	store := &fakeStore{}
	m := NewManager(store, &fakeShifts{active: &models.Shift{ID: "sh-1"}})

	cases := [][]models.PaymentMethodEntry{
		nil,
		{{Kind: "cheque", Amount: 100}},
		{{Kind: models.PaymentMethodCash, Amount: -5}},
	}
	for _, entries := range cases {
		if _, err := m.Add(context.Background(), "sh-1", entries); !isValidationError(err) {
			t.Errorf("entries %+v: expected validation error, got %v", entries, err)
		}
	}
	if store.addCalls != 0 {
		t.Errorf("invalid entries must not reach the network, got %d calls", store.addCalls)
	}
}

func TestAddTriggersReread(t *testing.T) {
	store := &fakeStore{}
	m := NewManager(store, &fakeShifts{active: &models.Shift{ID: "sh-1"}})

	entries, err := m.Add(context.Background(), "", []models.PaymentMethodEntry{
		{Kind: models.PaymentMethodCash, Amount: 100000},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if store.addCalls != 1 || store.listCalls != 1 {
		t.Errorf("expected one add and one re-read, got add=%d list=%d", store.addCalls, store.listCalls)
	}
	if len(entries) != 1 {
		t.Errorf("expected refreshed list of 1 entry, got %d", len(entries))
	}
}

func TestListFailureReturnsEmptyList(t *testing.T) {
	store := &fakeStore{listErr: errNetwork}
	m := NewManager(store, &fakeShifts{})

	entries := m.List(context.Background(), "sh-1")
	if entries == nil || len(entries) != 0 {
		t.Errorf("read failure must degrade to an empty list, got %v", entries)
	}
}

func TestRemoveClearsFullSet(t *testing.T) {
	store := &fakeStore{entries: []models.PaymentMethodEntry{
		{Kind: models.PaymentMethodCash, Amount: 1000},
		{Kind: models.PaymentMethodCard, Amount: 2000},
	}}
	m := NewManager(store, &fakeShifts{})

	entries, err := m.Remove(context.Background(), "sh-1")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if store.delCalls != 1 {
		t.Errorf("expected one delete call, got %d", store.delCalls)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty set after removal, got %d entries", len(entries))
	}
}

func TestHeldShiftLookup(t *testing.T) {
	active := &models.Shift{ID: "sh-open"}
	closed := &models.Shift{ID: "sh-closed"}
	m := NewManager(&fakeStore{}, &fakeShifts{active: active, lastClosed: closed})

	if got := m.heldShift("sh-open"); got == nil || got.ID != "sh-open" {
		t.Error("active shift not found")
	}
	if got := m.heldShift("sh-closed"); got == nil || got.ID != "sh-closed" {
		t.Error("last closed shift not found")
	}
	if got := m.heldShift("sh-other"); got != nil {
		t.Errorf("unexpected shift %+v", got)
	}
}
