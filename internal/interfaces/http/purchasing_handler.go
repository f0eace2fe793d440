package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/application/purchasing"
)

// PurchasingHandler expone órdenes de compra, recepciones y notas débito.
type PurchasingHandler struct {
	orders   *purchasing.PurchaseOrderUseCase
	receipts *purchasing.GoodsReceiptUseCase
	notes    *purchasing.DebitNoteUseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(orders *purchasing.PurchaseOrderUseCase, receipts *purchasing.GoodsReceiptUseCase, notes *purchasing.DebitNoteUseCase) *PurchasingHandler {
	return &PurchasingHandler{orders: orders, receipts: receipts, notes: notes}
}

// CreateOrder godoc
// @Summary      Crear orden de compra (borrador)
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "orden"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchasing/orders [post]
func (h *PurchasingHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	order, err := h.orders.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// ApproveOrder godoc
// @Summary      Aprobar orden de compra
// @Description  Pasa de DRAFT a APPROVED y suma las cantidades a on_order.
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchasing/orders/{id}/approve [post]
func (h *PurchasingHandler) ApproveOrder(c *fiber.Ctx) error {
	order, err := h.orders.Approve(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// GetOrder godoc
// @Summary      Obtener orden de compra
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchasing/orders/{id} [get]
func (h *PurchasingHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orders.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(order)
}

// ListOrders godoc
// @Summary      Listar órdenes de compra
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "filtrar por estado"
// @Param        limit   query  int     false  "máx. resultados (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200     {array}  dto.PurchaseOrderResponse
// @Router       /api/purchasing/orders [get]
func (h *PurchasingHandler) ListOrders(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.orders.List(GetCompanyID(c), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CreateReceipt godoc
// @Summary      Registrar recepción de mercancía
// @Description  Entra stock, actualiza costo promedio y el estado de la orden.
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoodsReceiptRequest  true  "recepción"
// @Success      201   {object}  dto.GoodsReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchasing/receipts [post]
func (h *PurchasingHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.CreateGoodsReceiptRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	receipt, err := h.receipts.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// CreateDebitNote godoc
// @Summary      Crear nota débito (devolución a proveedor)
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDebitNoteRequest  true  "nota débito"
// @Success      201   {object}  dto.NoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchasing/debit-notes [post]
func (h *PurchasingHandler) CreateDebitNote(c *fiber.Ctx) error {
	var in dto.CreateDebitNoteRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	note, err := h.notes.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}
