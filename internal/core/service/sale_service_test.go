package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/studiolume/pos-backoffice/internal/core/domain"
	"github.com/studiolume/pos-backoffice/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub ledger
// ---------------------------------------------------------------------------

type stubSaleRepo struct {
	sales       []*domain.Sale // in insertion order
	recordErr   error          // if set, RecordSale returns this error
	recordCalls int
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{}
}

func (r *stubSaleRepo) RecordSale(_ context.Context, sale *domain.Sale) (string, error) {
	r.recordCalls++
	if r.recordErr != nil {
		return "", r.recordErr
	}
	clone := *sale
	clone.Items = append([]domain.SaleLineItem(nil), sale.Items...)
	r.sales = append(r.sales, &clone)
	return clone.ID, nil
}

// ListHistory mirrors the real Postgres query: newest first, ties in
// insertion order, scoped to operatorID when non-empty.
func (r *stubSaleRepo) ListHistory(_ context.Context, operatorID string) ([]*domain.SaleView, error) {
	if r.recordErr != nil {
		return nil, r.recordErr
	}

	var matched []*domain.Sale
	for _, s := range r.sales {
		if operatorID != "" && s.OperatorID != operatorID {
			continue
		}
		matched = append(matched, s)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	views := make([]*domain.SaleView, 0, len(matched))
	for _, s := range matched {
		v := &domain.SaleView{
			ID:           s.ID,
			TotalAmount:  s.TotalAmount,
			CreatedAt:    s.CreatedAt,
			ClientName:   "client-" + s.ClientID,
			OperatorName: "operator-" + s.OperatorID,
		}
		for _, item := range s.Items {
			v.Items = append(v.Items, domain.SaleLineItemView{
				ID:              item.ID,
				ServiceTypeName: "service-" + item.ServiceTypeID,
				ChargedAmount:   item.ChargedAmount,
			})
		}
		views = append(views, v)
	}
	return views, nil
}

func (r *stubSaleRepo) SumTotals(_ context.Context, operatorID string, from, to time.Time) (decimal.Decimal, error) {
	if r.recordErr != nil {
		return decimal.Zero, r.recordErr
	}
	total := decimal.Zero
	for _, s := range r.sales {
		if operatorID != "" && s.OperatorID != operatorID {
			continue
		}
		if s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		total = total.Add(s.TotalAmount)
	}
	return total, nil
}

// fakeReplay is an in-memory ReplayStore.
type fakeReplay struct {
	entries   map[string]string
	lookupErr error
}

func newFakeReplay() *fakeReplay {
	return &fakeReplay{entries: make(map[string]string)}
}

func (f *fakeReplay) Lookup(_ context.Context, key string) (string, bool, error) {
	if f.lookupErr != nil {
		return "", false, f.lookupErr
	}
	id, ok := f.entries[key]
	return id, ok, nil
}

func (f *fakeReplay) Remember(_ context.Context, key, saleID string) error {
	f.entries[key] = saleID
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func saleInput(clientID string, total string, amounts ...string) ports.RecordSaleInput {
	items := make([]ports.SaleItemInput, 0, len(amounts))
	for i, a := range amounts {
		items = append(items, ports.SaleItemInput{
			ServiceTypeID: "svc_" + string(rune('a'+i)),
			ChargedAmount: money(a),
		})
	}
	return ports.RecordSaleInput{ClientID: clientID, TotalAmount: money(total), Items: items}
}

var admin = domain.Principal{ID: "op_admin", Role: domain.RoleAdmin}
var collaborator = domain.Principal{ID: "op_1", Role: domain.RoleCollaborator}

// ---------------------------------------------------------------------------
// RecordSale
// ---------------------------------------------------------------------------

func TestSaleService_Record_Success(t *testing.T) {
	repo := newStubSaleRepo()
	svc := NewSaleService(repo, nil, discardLogger)

	result, err := svc.RecordSale(context.Background(), collaborator, saleInput("client_1", "45.00", "30.00", "15.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SaleID == "" {
		t.Fatal("expected a sale id")
	}
	if result.AlreadyExisted {
		t.Error("expected AlreadyExisted=false for a new sale")
	}
	if result.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}

	if len(repo.sales) != 1 {
		t.Fatalf("expected 1 stored sale, got %d", len(repo.sales))
	}
	stored := repo.sales[0]
	if stored.OperatorID != "op_1" {
		t.Errorf("expected operator_id op_1, got %q", stored.OperatorID)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(stored.Items))
	}
	for i, item := range stored.Items {
		if item.Position != i {
			t.Errorf("item %d: expected position %d, got %d", i, i, item.Position)
		}
		if item.SaleID != stored.ID {
			t.Errorf("item %d: sale_id mismatch", i)
		}
	}
}

func TestSaleService_Record_ValidationFailures(t *testing.T) {
	cases := []struct {
		name  string
		input ports.RecordSaleInput
	}{
		{"missing client", saleInput("", "10.00", "10.00")},
		{"zero total", saleInput("client_1", "0", "10.00")},
		{"negative total", saleInput("client_1", "-5.00", "10.00")},
		{"no items", saleInput("client_1", "10.00")},
		{"item without service type", ports.RecordSaleInput{
			ClientID:    "client_1",
			TotalAmount: money("10.00"),
			Items:       []ports.SaleItemInput{{ChargedAmount: money("10.00")}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubSaleRepo()
			svc := NewSaleService(repo, nil, discardLogger)

			_, err := svc.RecordSale(context.Background(), collaborator, tc.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if repo.recordCalls != 0 {
				t.Fatalf("expected zero store calls on validation failure, got %d", repo.recordCalls)
			}
		})
	}
}

func TestSaleService_Record_StoreError(t *testing.T) {
	repo := newStubSaleRepo()
	repo.recordErr = errors.New("db unavailable")
	svc := NewSaleService(repo, nil, discardLogger)

	_, err := svc.RecordSale(context.Background(), collaborator, saleInput("client_1", "10.00", "10.00"))
	if err == nil {
		t.Fatal("expected error when the ledger fails, got nil")
	}
	if len(repo.sales) != 0 {
		t.Fatalf("expected no stored sale after failure, got %d", len(repo.sales))
	}
}

func TestSaleService_Record_TotalNotReconciledAgainstItems(t *testing.T) {
	// The header total is operator-supplied and may legitimately differ from
	// the item sum (discounts); the recorder must accept the mismatch.
	repo := newStubSaleRepo()
	svc := NewSaleService(repo, nil, discardLogger)

	_, err := svc.RecordSale(context.Background(), collaborator, saleInput("client_1", "40.00", "30.00", "15.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Idempotent replay
// ---------------------------------------------------------------------------

func TestSaleService_Record_IdempotentReplay(t *testing.T) {
	repo := newStubSaleRepo()
	replay := newFakeReplay()
	svc := NewSaleService(repo, replay, discardLogger)

	input := saleInput("client_1", "10.00", "10.00")
	input.IdempotencyKey = "key-1"

	first, err := svc.RecordSale(context.Background(), collaborator, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.RecordSale(context.Background(), collaborator, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.AlreadyExisted {
		t.Error("expected AlreadyExisted=true on replay")
	}
	if second.SaleID != first.SaleID {
		t.Errorf("replay returned different id: %q vs %q", second.SaleID, first.SaleID)
	}
	if repo.recordCalls != 1 {
		t.Fatalf("expected exactly one ledger write, got %d", repo.recordCalls)
	}
}

func TestSaleService_Record_ReplayLookupFailureRecordsAnyway(t *testing.T) {
	repo := newStubSaleRepo()
	replay := newFakeReplay()
	replay.lookupErr = errors.New("redis down")
	svc := NewSaleService(repo, replay, discardLogger)

	input := saleInput("client_1", "10.00", "10.00")
	input.IdempotencyKey = "key-1"

	result, err := svc.RecordSale(context.Background(), collaborator, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AlreadyExisted {
		t.Error("expected a fresh recording when the replay store is down")
	}
	if repo.recordCalls != 1 {
		t.Fatalf("expected one ledger write, got %d", repo.recordCalls)
	}
}

// ---------------------------------------------------------------------------
// ListHistory
// ---------------------------------------------------------------------------

func TestSaleService_History_RoundTrip(t *testing.T) {
	repo := newStubSaleRepo()
	svc := NewSaleService(repo, nil, discardLogger)

	result, err := svc.RecordSale(context.Background(), collaborator, saleInput("client_1", "45.00", "30.00", "15.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views, err := svc.ListHistory(context.Background(), collaborator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 sale in history, got %d", len(views))
	}
	v := views[0]
	if v.ID != result.SaleID {
		t.Errorf("expected sale id %q, got %q", result.SaleID, v.ID)
	}
	if len(v.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(v.Items))
	}

	got := map[string]int{}
	for _, item := range v.Items {
		got[item.ChargedAmount.String()]++
	}
	want := map[string]int{"30": 1, "15": 1}
	for amount, n := range want {
		if got[amount] != n {
			t.Errorf("charged amount %s: expected %d, got %d (%v)", amount, n, got[amount], got)
		}
	}
}

func TestSaleService_History_Scoping(t *testing.T) {
	repo := newStubSaleRepo()
	svc := NewSaleService(repo, nil, discardLogger)

	other := domain.Principal{ID: "op_2", Role: domain.RoleCollaborator}
	ctx := context.Background()
	if _, err := svc.RecordSale(ctx, collaborator, saleInput("client_1", "10.00", "10.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.RecordSale(ctx, other, saleInput("client_2", "20.00", "20.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	own, err := svc.ListHistory(ctx, collaborator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(own) != 1 {
		t.Fatalf("collaborator should see 1 sale, got %d", len(own))
	}
	if own[0].TotalAmount.String() != "10" {
		t.Errorf("collaborator sees a foreign sale: %v", own[0].TotalAmount)
	}

	all, err := svc.ListHistory(ctx, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin should see 2 sales, got %d", len(all))
	}

	unscoped, err := svc.ListHistory(ctx, domain.UnscopedPrincipal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unscoped) != 2 {
		t.Fatalf("unscoped principal should see 2 sales, got %d", len(unscoped))
	}
}

func TestSaleService_History_Ordering(t *testing.T) {
	repo := newStubSaleRepo()
	svc := NewSaleService(repo, nil, discardLogger)

	ctx := context.Background()
	base := time.Now().UTC()
	for i, total := range []string{"1.00", "2.00", "3.00"} {
		result, err := svc.RecordSale(ctx, admin, saleInput("client_1", total, total))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Rewrite the stored timestamps so T1 < T2 < T3 deterministically.
		for _, s := range repo.sales {
			if s.ID == result.SaleID {
				s.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			}
		}
	}

	views, err := svc.ListHistory(ctx, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 sales, got %d", len(views))
	}
	wantTotals := []string{"3", "2", "1"} // newest first
	for i, want := range wantTotals {
		if views[i].TotalAmount.String() != want {
			t.Errorf("position %d: expected total %s, got %s", i, want, views[i].TotalAmount)
		}
	}
}

func TestSaleService_History_IdempotentReads(t *testing.T) {
	repo := newStubSaleRepo()
	svc := NewSaleService(repo, nil, discardLogger)

	ctx := context.Background()
	if _, err := svc.RecordSale(ctx, admin, saleInput("client_1", "10.00", "10.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := svc.ListHistory(ctx, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ListHistory(ctx, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("repeated reads differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || !first[i].TotalAmount.Equal(second[i].TotalAmount) {
			t.Fatalf("repeated reads differ at %d", i)
		}
	}
}

// ---------------------------------------------------------------------------
// Summarize
// ---------------------------------------------------------------------------

func TestSaleService_Summarize(t *testing.T) {
	repo := newStubSaleRepo()
	svc := NewSaleService(repo, nil, discardLogger)

	ctx := context.Background()
	record := func(total string, createdAt time.Time) {
		result, err := svc.RecordSale(ctx, collaborator, saleInput("client_1", total, total))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, s := range repo.sales {
			if s.ID == result.SaleID {
				s.CreatedAt = createdAt
			}
		}
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	record("10.00", now)
	record("5.00", now)
	record("20.00", monthStart.Add(-time.Hour)) // last month

	summary, err := svc.Summarize(ctx, collaborator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.RevenueToday.Equal(money("15.00")) {
		t.Errorf("expected revenue_today 15.00, got %s", summary.RevenueToday)
	}
	if !summary.RevenueMonth.Equal(money("15.00")) {
		t.Errorf("expected revenue_month to exclude last month's 20.00, got %s", summary.RevenueMonth)
	}
}

func TestSaleService_Summarize_Scoping(t *testing.T) {
	repo := newStubSaleRepo()
	svc := NewSaleService(repo, nil, discardLogger)

	other := domain.Principal{ID: "op_2", Role: domain.RoleCollaborator}
	ctx := context.Background()
	if _, err := svc.RecordSale(ctx, collaborator, saleInput("client_1", "10.00", "10.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.RecordSale(ctx, other, saleInput("client_2", "20.00", "20.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	own, err := svc.Summarize(ctx, collaborator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !own.RevenueToday.Equal(money("10.00")) {
		t.Errorf("collaborator summary includes foreign sales: %s", own.RevenueToday)
	}

	all, err := svc.Summarize(ctx, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !all.RevenueToday.Equal(money("30.00")) {
		t.Errorf("admin summary should cover all operators: %s", all.RevenueToday)
	}
}

func TestSaleService_Summarize_Empty(t *testing.T) {
	repo := newStubSaleRepo()
	svc := NewSaleService(repo, nil, discardLogger)

	summary, err := svc.Summarize(context.Background(), admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.RevenueToday.IsZero() || !summary.RevenueMonth.IsZero() {
		t.Errorf("expected zero totals on an empty ledger, got %s / %s",
			summary.RevenueToday, summary.RevenueMonth)
	}
}

func TestSaleService_Summarize_DecimalPrecision(t *testing.T) {
	// 0.1 + 0.2 style accumulation must stay exact with decimal arithmetic.
	repo := newStubSaleRepo()
	svc := NewSaleService(repo, nil, discardLogger)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if _, err := svc.RecordSale(ctx, admin, saleInput("client_1", "0.10", "0.10")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	summary, err := svc.Summarize(ctx, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.RevenueToday.Equal(money("1.00")) {
		t.Errorf("expected exactly 1.00, got %s", summary.RevenueToday)
	}
}
