package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/internal/domain/enum"
	"github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Record is an amount with the time it was booked
type Record struct {
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Buckets holds the today, yesterday and month totals of a set of records.
// A record counts in every bucket it falls into.
type Buckets struct {
	Today          decimal.Decimal `json:"today"`
	Yesterday      decimal.Decimal `json:"yesterday"`
	Month          decimal.Decimal `json:"month"`
	TodayCount     int             `json:"today_count"`
	YesterdayCount int             `json:"yesterday_count"`
	MonthCount     int             `json:"month_count"`
}

// BucketByDate sums records by calendar day and month as seen in loc
func BucketByDate(records []Record, now time.Time, loc *time.Location) Buckets {
	if loc == nil {
		loc = time.UTC
	}
	localNow := now.In(loc)
	today := localNow.Format(dayLayout)
	yesterday := localNow.AddDate(0, 0, -1).Format(dayLayout)
	month := localNow.Format(monthLayout)

	b := Buckets{Today: decimal.Zero, Yesterday: decimal.Zero, Month: decimal.Zero}
	for _, r := range records {
		day := r.CreatedAt.In(loc).Format(dayLayout)
		if day == today {
			b.Today = b.Today.Add(r.Amount)
			b.TodayCount++
		}
		if day == yesterday {
			b.Yesterday = b.Yesterday.Add(r.Amount)
			b.YesterdayCount++
		}
		if day[:len(monthLayout)] == month {
			b.Month = b.Month.Add(r.Amount)
			b.MonthCount++
		}
	}
	return b
}

// TenderSplit is the month's settled amounts by payment channel
type TenderSplit struct {
	UPI  decimal.Decimal `json:"upi"`
	Cash decimal.Decimal `json:"cash"`
	// Orders counts orders per payment method
	Orders map[enum.PaymentMethod]int `json:"orders"`
}

// SalesSummary is the sales report
type SalesSummary struct {
	Buckets
	Tender TenderSplit `json:"tender"`
}

// Overview puts sales and expenses side by side
type Overview struct {
	Sales    SalesSummary `json:"sales"`
	Expenses Buckets      `json:"expenses"`
	Net      Buckets      `json:"net"`
	Timezone string       `json:"timezone"`
	AsOf     time.Time    `json:"as_of"`
}

// MonthExport is a generated workbook
type MonthExport struct {
	Filename string
	Content  []byte
}

// ReportService aggregates orders and expenses into dashboard figures
type ReportService struct {
	orderRepo   repository.OrderRepository
	expenseRepo repository.ExpenseRepository
	loc         *time.Location
	now         func() time.Time
}

// NewReportService creates a new report service bucketing days in loc
func NewReportService(orderRepo repository.OrderRepository, expenseRepo repository.ExpenseRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		orderRepo:   orderRepo,
		expenseRepo: expenseRepo,
		loc:         loc,
		now:         time.Now,
	}
}

// window returns the UTC range covering yesterday and the current month
func (s *ReportService) window(now time.Time) *repository.DateRangeParams {
	local := now.In(s.loc)
	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, s.loc)
	yesterdayStart := time.Date(local.Year(), local.Month(), local.Day()-1, 0, 0, 0, 0, s.loc)
	since := monthStart
	if yesterdayStart.Before(since) {
		since = yesterdayStart
	}
	since = since.UTC()
	return &repository.DateRangeParams{Since: &since}
}

func (s *ReportService) sales(ctx context.Context, accountID uuid.UUID, now time.Time) (SalesSummary, error) {
	orders, err := s.orderRepo.List(ctx, accountID, s.window(now))
	if err != nil {
		return SalesSummary{}, apperror.NewStorageError("load orders", err)
	}

	records := make([]Record, len(orders))
	for i, o := range orders {
		records[i] = Record{Amount: o.Total, CreatedAt: o.CreatedAt}
	}

	summary := SalesSummary{
		Buckets: BucketByDate(records, now, s.loc),
		Tender: TenderSplit{
			UPI:    decimal.Zero,
			Cash:   decimal.Zero,
			Orders: map[enum.PaymentMethod]int{},
		},
	}
	month := now.In(s.loc).Format(monthLayout)
	for _, o := range orders {
		if o.CreatedAt.In(s.loc).Format(monthLayout) != month {
			continue
		}
		summary.Tender.UPI = summary.Tender.UPI.Add(o.UPIAmount)
		summary.Tender.Cash = summary.Tender.Cash.Add(o.CashAmount)
		summary.Tender.Orders[o.PaymentMethod]++
	}
	return summary, nil
}

func (s *ReportService) expenses(ctx context.Context, accountID uuid.UUID, now time.Time) (Buckets, error) {
	expenses, err := s.expenseRepo.List(ctx, accountID, s.window(now))
	if err != nil {
		return Buckets{}, apperror.NewStorageError("load expenses", err)
	}

	records := make([]Record, len(expenses))
	for i, e := range expenses {
		records[i] = Record{Amount: e.Amount, CreatedAt: e.CreatedAt}
	}
	return BucketByDate(records, now, s.loc), nil
}

// SalesSummary returns today, yesterday and month sales
func (s *ReportService) SalesSummary(ctx context.Context, accountID uuid.UUID) (*SalesSummary, error) {
	summary, err := s.sales(ctx, accountID, s.now())
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// ExpenseSummary returns today, yesterday and month expenses
func (s *ReportService) ExpenseSummary(ctx context.Context, accountID uuid.UUID) (*Buckets, error) {
	b, err := s.expenses(ctx, accountID, s.now())
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Overview returns sales, expenses and their difference per bucket
func (s *ReportService) Overview(ctx context.Context, accountID uuid.UUID) (*Overview, error) {
	now := s.now()
	sales, err := s.sales(ctx, accountID, now)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses(ctx, accountID, now)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Sales:    sales,
		Expenses: expenses,
		Net: Buckets{
			Today:          sales.Today.Sub(expenses.Today),
			Yesterday:      sales.Yesterday.Sub(expenses.Yesterday),
			Month:          sales.Month.Sub(expenses.Month),
			TodayCount:     sales.TodayCount + expenses.TodayCount,
			YesterdayCount: sales.YesterdayCount + expenses.YesterdayCount,
			MonthCount:     sales.MonthCount + expenses.MonthCount,
		},
		Timezone: s.loc.String(),
		AsOf:     now.In(s.loc),
	}, nil
}

// ExportMonth builds an xlsx workbook with the orders and expenses of a
// calendar month given as YYYY-MM
func (s *ReportService) ExportMonth(ctx context.Context, accountID uuid.UUID, month string) (*MonthExport, error) {
	start, err := time.ParseInLocation(monthLayout, month, s.loc)
	if err != nil {
		return nil, apperror.NewFieldError("month", "month must be formatted as YYYY-MM")
	}
	since := start.UTC()
	until := start.AddDate(0, 1, 0).UTC()
	params := &repository.DateRangeParams{Since: &since, Until: &until}

	orders, err := s.orderRepo.List(ctx, accountID, params)
	if err != nil {
		return nil, apperror.NewStorageError("load orders", err)
	}
	expenses, err := s.expenseRepo.List(ctx, accountID, params)
	if err != nil {
		return nil, apperror.NewStorageError("load expenses", err)
	}

	content, err := s.buildWorkbook(orders, expenses)
	if err != nil {
		return nil, apperror.NewStorageError("build workbook", err)
	}
	return &MonthExport{
		Filename: fmt.Sprintf("yumzee-%s.xlsx", month),
		Content:  content,
	}, nil
}

func (s *ReportService) buildWorkbook(orders []entity.Order, expenses []entity.Expense) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const ordersSheet, expensesSheet = "Orders", "Expenses"
	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(expensesSheet); err != nil {
		return nil, err
	}

	header := []interface{}{"Date", "Table", "Items", "Quantity", "Discount", "Delivery Fee", "Total", "Method", "UPI", "Cash"}
	if err := f.SetSheetRow(ordersSheet, "A1", &header); err != nil {
		return nil, err
	}
	total := decimal.Zero
	for i, o := range orders {
		items := ""
		for j, l := range o.Items {
			if j > 0 {
				items += ", "
			}
			items += fmt.Sprintf("%s x%d", l.Name, l.Quantity)
		}
		row := []interface{}{
			o.CreatedAt.In(s.loc).Format("2006-01-02 15:04"),
			o.TableNo,
			items,
			o.TotalQuantity(),
			o.Discount.InexactFloat64(),
			o.DeliveryFee.InexactFloat64(),
			o.Total.InexactFloat64(),
			o.PaymentMethod.String(),
			o.UPIAmount.InexactFloat64(),
			o.CashAmount.InexactFloat64(),
		}
		if err := f.SetSheetRow(ordersSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
		total = total.Add(o.Total)
	}
	footer := []interface{}{"Total", nil, nil, nil, nil, nil, total.InexactFloat64()}
	if err := f.SetSheetRow(ordersSheet, fmt.Sprintf("A%d", len(orders)+2), &footer); err != nil {
		return nil, err
	}

	header = []interface{}{"Date", "Name", "Amount"}
	if err := f.SetSheetRow(expensesSheet, "A1", &header); err != nil {
		return nil, err
	}
	total = decimal.Zero
	for i, e := range expenses {
		row := []interface{}{
			e.CreatedAt.In(s.loc).Format("2006-01-02 15:04"),
			e.Name,
			e.Amount.InexactFloat64(),
		}
		if err := f.SetSheetRow(expensesSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
		total = total.Add(e.Amount)
	}
	footer = []interface{}{"Total", nil, total.InexactFloat64()}
	if err := f.SetSheetRow(expensesSheet, fmt.Sprintf("A%d", len(expenses)+2), &footer); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
