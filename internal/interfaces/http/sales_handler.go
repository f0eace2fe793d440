package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/application/sales"
)

// SalesHandler expone facturas, remisiones y notas crédito.
type SalesHandler struct {
	invoices   *sales.InvoiceUseCase
	deliveries *sales.DeliveryUseCase
	notes      *sales.CreditNoteUseCase
	pdfs       *sales.PDFUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(invoices *sales.InvoiceUseCase, deliveries *sales.DeliveryUseCase, notes *sales.CreditNoteUseCase, pdfs *sales.PDFUseCase) *SalesHandler {
	return &SalesHandler{invoices: invoices, deliveries: deliveries, notes: notes, pdfs: pdfs}
}

// CreateInvoice godoc
// @Summary      Crear factura de venta
// @Description  Descarga stock (FEFO en productos por lote) y factura en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/invoices [post]
func (h *SalesHandler) CreateInvoice(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	invoice, err := h.invoices.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetInvoice godoc
// @Summary      Obtener factura
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/invoices/{id} [get]
func (h *SalesHandler) GetInvoice(c *fiber.Ctx) error {
	invoice, err := h.invoices.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if invoice == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
	}
	return c.JSON(invoice)
}

// ListInvoices godoc
// @Summary      Listar facturas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. resultados (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200     {array}  dto.InvoiceResponse
// @Router       /api/sales/invoices [get]
func (h *SalesHandler) ListInvoices(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.invoices.List(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CreateDelivery godoc
// @Summary      Crear remisión de entrega
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "remisión"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/deliveries [post]
func (h *SalesHandler) CreateDelivery(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	delivery, err := h.deliveries.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(delivery)
}

// DownloadDeliveryPDF godoc
// @Summary      Descargar remisión en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la remisión"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/deliveries/{id}/pdf [get]
func (h *SalesHandler) DownloadDeliveryPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdfs.DownloadDeliveryPDF(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// CreateCreditNote godoc
// @Summary      Crear nota crédito (devolución de cliente)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCreditNoteRequest  true  "nota crédito"
// @Success      201   {object}  dto.NoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/credit-notes [post]
func (h *SalesHandler) CreateCreditNote(c *fiber.Ctx) error {
	var in dto.CreateCreditNoteRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	note, err := h.notes.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}
