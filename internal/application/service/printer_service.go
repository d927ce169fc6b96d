package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/sangkips/yumzee-api/pkg/printer"
	"github.com/sangkips/yumzee-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService composes receipts and sends them to the thermal printer
type PrinterService struct {
	printer      printer.Printer
	printerType  string
	width        int
	header       entity.ReceiptHeader
	draftService *DraftService
	orderService *OrderService
	loc          *time.Location
	log          *zap.Logger
	now          func() time.Time
}

// PrinterOptions describes the attached printer and the receipt header
type PrinterOptions struct {
	Type      string
	Width     int
	StoreName string
	Location  *time.Location
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	opts PrinterOptions,
	draftService *DraftService,
	orderService *OrderService,
	log *zap.Logger,
) *PrinterService {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &PrinterService{
		printer:      p,
		printerType:  opts.Type,
		width:        opts.Width,
		header:       entity.ReceiptHeader{StoreName: opts.StoreName},
		draftService: draftService,
		orderService: orderService,
		loc:          loc,
		log:          log,
		now:          time.Now,
	}
}

// PrinterStatus returns the current printer status information
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// PrintDraftReceipt prints the bill of a table that has not been settled yet
func (s *PrinterService) PrintDraftReceipt(ctx context.Context, accountID uuid.UUID, tableNo int) (*entity.Receipt, error) {
	draft, err := s.draftService.GetDraft(ctx, accountID, tableNo)
	if err != nil {
		return nil, err
	}
	if draft.IsEmpty() {
		return nil, apperror.NewFieldError("items", "table has no items to print")
	}

	subtotal := draft.Subtotal()
	receipt := &entity.Receipt{
		Header:    s.header,
		Reference: "Table " + strconv.Itoa(tableNo),
		TableNo:   tableNo,
		Date:      s.now().In(s.loc).Format("2006-01-02 15:04"),
		SubTotal:  &subtotal,
		Total:     draft.Total,
	}
	if draft.Discount != nil {
		receipt.Discount = *draft.Discount
	}
	if draft.DeliveryFee != nil {
		receipt.DeliveryFee = *draft.DeliveryFee
	}
	for _, l := range draft.Lines {
		price := l.UnitPrice
		lineTotal := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: &price,
			Total:     &lineTotal,
		})
	}

	return receipt, s.print(ctx, receipt)
}

// PrintOrderReceipt prints the receipt of a settled order
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, accountID, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.orderService.GetOrder(ctx, accountID, orderID)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header:      s.header,
		Reference:   order.ID.String()[:8],
		TableNo:     order.TableNo,
		Date:        order.CreatedAt.In(s.loc).Format("2006-01-02 15:04"),
		PaymentType: order.PaymentMethod.String(),
		Discount:    order.Discount,
		DeliveryFee: order.DeliveryFee,
		Total:       order.Total,
		UPI:         order.UPIAmount,
		Cash:        order.CashAmount,
	}
	for _, l := range order.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{Name: l.Name, Quantity: l.Quantity})
	}

	return receipt, s.print(ctx, receipt)
}

func (s *PrinterService) print(ctx context.Context, receipt *entity.Receipt) error {
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.width)); err != nil {
		s.log.Error("printer error",
			zap.String("reference", receipt.Reference),
			zap.Error(err),
		)
		return apperror.NewAppError(503, "Printer is not available")
	}
	return nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes for paper of the given
// character width.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		Row("Ref:", r.Reference).
		Row("Date:", r.Date)
	if r.TableNo > 0 {
		doc.Row("Table:", strconv.Itoa(r.TableNo))
	} else {
		doc.Row("Table:", "Takeaway")
	}
	if r.PaymentType != "" {
		doc.Row("Payment:", r.PaymentType)
	}
	doc.Separator('-')

	for _, item := range r.Items {
		label := strconv.Itoa(item.Quantity) + "x " + item.Name
		if item.Total != nil {
			doc.Row(label, utils.FormatMoney(*item.Total))
		} else {
			doc.Text(label)
		}
		if item.UnitPrice != nil && item.Quantity > 1 {
			doc.Text("  @ " + utils.FormatMoney(*item.UnitPrice) + " each")
		}
	}
	doc.Separator('-')

	if r.SubTotal != nil {
		doc.Row("Subtotal:", utils.FormatMoney(*r.SubTotal))
	}
	if !r.Discount.IsZero() {
		doc.Row("Discount:", "-"+utils.FormatMoney(r.Discount))
	}
	if !r.DeliveryFee.IsZero() {
		doc.Row("Delivery:", utils.FormatMoney(r.DeliveryFee))
	}
	doc.SetBold(true).
		Row("TOTAL:", utils.FormatMoney(r.Total)).
		SetBold(false)
	if !r.UPI.IsZero() {
		doc.Row("UPI:", utils.FormatMoney(r.UPI))
	}
	if !r.Cash.IsZero() {
		doc.Row("Cash:", utils.FormatMoney(r.Cash))
	}

	doc.Separator('-').
		SetAlign(printer.AlignCenter).
		FeedLines(1).
		Text("Thank you, visit again!").
		FeedLines(1).
		SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
