package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/application/service"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/response"
	"github.com/sangkips/yumzee-api/pkg/apperror"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus(c.Request.Context()))
}

// PrintTable prints the running bill of a table.
func (h *PrinterHandler) PrintTable(c *gin.Context) {
	accountID, tableNo, ok := tableRequest(c)
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintDraftReceipt(c.Request.Context(), accountID, tableNo)
	h.respond(c, receipt, err)
}

// PrintOrder prints the receipt of a settled order.
func (h *PrinterHandler) PrintOrder(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	var uri request.PrintOrderURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.NewBadRequestError("Invalid order ID"))
		return
	}

	receipt, err := h.printerService.PrintOrderReceipt(c.Request.Context(), accountID, uuid.MustParse(uri.ID))
	h.respond(c, receipt, err)
}

func (h *PrinterHandler) respond(c *gin.Context, receipt *entity.Receipt, err error) {
	if err != nil && receipt == nil {
		response.Error(c, err)
		return
	}
	if err != nil {
		// Return the receipt anyway so the client can show or reprint it
		response.OK(c, "Receipt prepared (printer unavailable)", gin.H{
			"receipt": receipt,
			"warning": apperror.GetAppError(err).Message,
		})
		return
	}

	response.OK(c, "Receipt sent to printer", gin.H{"receipt": receipt})
}
