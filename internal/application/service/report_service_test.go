package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/internal/domain/enum"
	infraRepo "github.com/sangkips/yumzee-api/internal/infrastructure/repository"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone %s unavailable: %v", name, err)
	}
	return loc
}

func TestBucketByDate(t *testing.T) {
	loc := mustLoad(t, "Asia/Kolkata")
	// 2026-03-15 10:00 IST
	now := time.Date(2026, 3, 15, 4, 30, 0, 0, time.UTC)

	records := []Record{
		{Amount: decimal.NewFromInt(100), CreatedAt: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)},
		// 2026-03-14 20:00 UTC is already the 15th in IST
		{Amount: decimal.NewFromInt(40), CreatedAt: time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)},
		{Amount: decimal.NewFromInt(7), CreatedAt: time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)},
		{Amount: decimal.NewFromInt(1000), CreatedAt: time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)},
		{Amount: decimal.NewFromInt(5000), CreatedAt: time.Date(2026, 2, 28, 6, 0, 0, 0, time.UTC)},
	}

	b := BucketByDate(records, now, loc)

	if !b.Today.Equal(decimal.NewFromInt(140)) || b.TodayCount != 2 {
		t.Errorf("Today = %s (%d), want 140 (2)", b.Today, b.TodayCount)
	}
	if !b.Yesterday.Equal(decimal.NewFromInt(7)) || b.YesterdayCount != 1 {
		t.Errorf("Yesterday = %s (%d), want 7 (1)", b.Yesterday, b.YesterdayCount)
	}
	if !b.Month.Equal(decimal.NewFromInt(1147)) || b.MonthCount != 4 {
		t.Errorf("Month = %s (%d), want 1147 (4)", b.Month, b.MonthCount)
	}
}

func TestBucketByDateFirstOfMonth(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{Amount: decimal.NewFromInt(30), CreatedAt: time.Date(2026, 3, 31, 22, 0, 0, 0, time.UTC)},
		{Amount: decimal.NewFromInt(5), CreatedAt: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)},
	}

	b := BucketByDate(records, now, time.UTC)

	if !b.Yesterday.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Yesterday = %s, want 30", b.Yesterday)
	}
	if !b.Month.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Month = %s, want 5: yesterday belongs to the previous month", b.Month)
	}
}

func TestBucketByDateEmpty(t *testing.T) {
	b := BucketByDate(nil, time.Now(), nil)
	if !b.Today.IsZero() || !b.Yesterday.IsZero() || !b.Month.IsZero() {
		t.Errorf("empty input should give zero buckets, got %+v", b)
	}
}

func seedReportData(t *testing.T, f *fixture, account uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	orderRepo := infraRepo.NewOrderRepository(f.db)
	expenseRepo := infraRepo.NewExpenseRepository(f.db)

	orders := []entity.Order{
		{TableNo: 1, Total: decimal.NewFromInt(110), PaymentMethod: enum.PaymentMethodBoth, UPIAmount: decimal.NewFromInt(60), CashAmount: decimal.NewFromInt(50), CreatedAt: time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC)},
		{TableNo: 2, Total: decimal.NewFromInt(90), PaymentMethod: enum.PaymentMethodCash, CashAmount: decimal.NewFromInt(90), CreatedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)},
		{TableNo: 3, Total: decimal.NewFromInt(500), PaymentMethod: enum.PaymentMethodUPI, UPIAmount: decimal.NewFromInt(500), CreatedAt: time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)},
	}
	for i := range orders {
		orders[i].AccountID = account
		orders[i].Items = []entity.OrderLine{{ItemID: uuid.New(), Name: "Thali", Quantity: 1}}
		if err := orderRepo.Create(ctx, &orders[i]); err != nil {
			t.Fatalf("Create(order) error = %v", err)
		}
	}

	expenses := []entity.Expense{
		{Name: "Gas", Amount: decimal.NewFromInt(30), CreatedAt: time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC)},
		{Name: "Rent", Amount: decimal.NewFromInt(400), CreatedAt: time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC)},
	}
	for i := range expenses {
		expenses[i].AccountID = account
		if err := expenseRepo.Create(ctx, &expenses[i]); err != nil {
			t.Fatalf("Create(expense) error = %v", err)
		}
	}
}

func newReportService(f *fixture, now time.Time) *ReportService {
	s := NewReportService(infraRepo.NewOrderRepository(f.db), infraRepo.NewExpenseRepository(f.db), time.UTC)
	s.now = fixedClock(now)
	return s
}

func TestOverview(t *testing.T) {
	f := newFixture(t)
	account := uuid.New()
	seedReportData(t, f, account)
	reports := newReportService(f, time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC))

	o, err := reports.Overview(context.Background(), account)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	if !o.Sales.Today.Equal(decimal.NewFromInt(110)) || !o.Sales.Yesterday.Equal(decimal.NewFromInt(90)) || !o.Sales.Month.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Sales = %+v", o.Sales.Buckets)
	}
	if !o.Expenses.Month.Equal(decimal.NewFromInt(430)) {
		t.Errorf("Expenses.Month = %s, want 430", o.Expenses.Month)
	}
	if !o.Net.Today.Equal(decimal.NewFromInt(80)) || !o.Net.Month.Equal(decimal.NewFromInt(-230)) {
		t.Errorf("Net = %+v", o.Net)
	}
	if !o.Sales.Tender.UPI.Equal(decimal.NewFromInt(60)) || !o.Sales.Tender.Cash.Equal(decimal.NewFromInt(140)) {
		t.Errorf("Tender = %+v", o.Sales.Tender)
	}
	if o.Sales.Tender.Orders[enum.PaymentMethodUPI] != 0 || o.Sales.Tender.Orders[enum.PaymentMethodCash] != 1 {
		t.Errorf("Tender.Orders = %v", o.Sales.Tender.Orders)
	}

	stranger, err := reports.SalesSummary(context.Background(), uuid.New())
	if err != nil || !stranger.Month.IsZero() {
		t.Errorf("SalesSummary(stranger) = %+v, %v", stranger, err)
	}
}

func TestExportMonth(t *testing.T) {
	f := newFixture(t)
	account := uuid.New()
	seedReportData(t, f, account)
	reports := newReportService(f, time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC))

	_, err := reports.ExportMonth(context.Background(), account, "March")
	wantValidation(t, err)

	export, err := reports.ExportMonth(context.Background(), account, "2026-03")
	if err != nil {
		t.Fatalf("ExportMonth() error = %v", err)
	}
	if export.Filename != "yumzee-2026-03.xlsx" {
		t.Errorf("Filename = %q", export.Filename)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(export.Content))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer wb.Close()

	orderRows, err := wb.GetRows("Orders")
	if err != nil {
		t.Fatalf("GetRows(Orders) error = %v", err)
	}
	// header, two March orders, total row
	if len(orderRows) != 4 {
		t.Errorf("Orders sheet has %d rows, want 4", len(orderRows))
	}

	expenseRows, err := wb.GetRows("Expenses")
	if err != nil {
		t.Fatalf("GetRows(Expenses) error = %v", err)
	}
	if len(expenseRows) != 4 || expenseRows[0][1] != "Name" {
		t.Errorf("Expenses sheet = %v", expenseRows)
	}
}
