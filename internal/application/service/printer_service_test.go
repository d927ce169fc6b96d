package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/internal/domain/enum"
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type capturePrinter struct {
	jobs [][]byte
	err  error
}

func (p *capturePrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *capturePrinter) IsConnected(context.Context) bool { return p.err == nil }

func newPrinterService(f *fixture, p *capturePrinter) *PrinterService {
	return NewPrinterService(p, PrinterOptions{Type: "network", Width: 32, StoreName: "Yumzee"}, f.drafts, f.orders, zap.NewNop())
}

func TestPrintDraftReceipt(t *testing.T) {
	f := newFixture(t)
	account := uuid.New()
	seedTableThree(t, f, account)
	p := &capturePrinter{}
	printers := newPrinterService(f, p)

	receipt, err := printers.PrintDraftReceipt(context.Background(), account, 3)
	if err != nil {
		t.Fatalf("PrintDraftReceipt() error = %v", err)
	}
	if receipt.SubTotal == nil || !receipt.SubTotal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("SubTotal = %v, want 100", receipt.SubTotal)
	}
	if !receipt.Total.Equal(decimal.NewFromInt(110)) {
		t.Errorf("Total = %s, want 110", receipt.Total)
	}
	if len(p.jobs) != 1 {
		t.Fatalf("printed %d jobs, want 1", len(p.jobs))
	}
	for _, want := range []string{"Yumzee", "2x Cola", "100.00", "Discount:", "-10.00", "Delivery:", "110.00"} {
		if !bytes.Contains(p.jobs[0], []byte(want)) {
			t.Errorf("receipt is missing %q", want)
		}
	}

	_, err = printers.PrintDraftReceipt(context.Background(), account, 4)
	wantValidation(t, err)
}

func TestPrintOrderReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := uuid.New()
	seedTableThree(t, f, account)
	result, err := f.orders.SettleTable(ctx, account, 3, PaymentInput{
		Method: enum.PaymentMethodBoth, UPI: money("60"), Cash: money("50"),
	})
	if err != nil {
		t.Fatalf("SettleTable() error = %v", err)
	}

	p := &capturePrinter{}
	receipt, err := newPrinterService(f, p).PrintOrderReceipt(ctx, account, result.Order.ID)
	if err != nil {
		t.Fatalf("PrintOrderReceipt() error = %v", err)
	}
	if receipt.PaymentType != "both" || !receipt.UPI.Equal(decimal.NewFromInt(60)) {
		t.Errorf("receipt = %+v", receipt)
	}
	for _, want := range []string{"UPI:", "60.00", "Cash:", "50.00"} {
		if !bytes.Contains(p.jobs[0], []byte(want)) {
			t.Errorf("receipt is missing %q", want)
		}
	}

	_, err = newPrinterService(f, p).PrintOrderReceipt(ctx, uuid.New(), result.Order.ID)
	wantNotFound(t, err)
}

func TestPrintFailureIsReported(t *testing.T) {
	f := newFixture(t)
	account := uuid.New()
	seedTableThree(t, f, account)

	printers := newPrinterService(f, &capturePrinter{err: errors.New("connection refused")})
	receipt, err := printers.PrintDraftReceipt(context.Background(), account, 3)
	if receipt == nil {
		t.Error("the receipt should still be returned when printing fails")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != http.StatusServiceUnavailable {
		t.Errorf("error = %v, want 503", err)
	}
	if printers.GetStatus(context.Background()).Connected {
		t.Error("status should report the printer as disconnected")
	}
}

func TestFormatReceiptTakeaway(t *testing.T) {
	r := &entity.Receipt{
		Header:    entity.ReceiptHeader{StoreName: "Yumzee"},
		Reference: "abcd1234",
		Date:      time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC).Format("2006-01-02 15:04"),
		Items:     []entity.ReceiptItem{{Name: "Masala Dosa", Quantity: 1}},
		Total:     decimal.NewFromInt(90),
	}
	out := FormatReceipt(r, 48)
	for _, want := range []string{"Takeaway", "1x Masala Dosa", "90.00"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("receipt is missing %q", want)
		}
	}
}
