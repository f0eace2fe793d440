package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/application/inventory"
)

// InventoryHandler expone movimientos, saldos, kardex y traslados.
type InventoryHandler struct {
	movements *inventory.MovementUseCase
	queries   *inventory.QueryUseCase
	transfers *inventory.TransferUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.MovementUseCase, queries *inventory.QueryUseCase, transfers *inventory.TransferUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, queries: queries, transfers: transfers}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual
// @Description  IN/OUT/ADJUSTMENT sobre una bodega, o TRANSFER entre dos.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "movimiento"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	txID, err := h.movements.Register(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transaction_id": txID})
}

// GetStock godoc
// @Summary      Consultar saldo de un producto en una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    path  string  true  "ID del producto"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{product_id}/{warehouse_id} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	stock, err := h.queries.GetStock(GetCompanyID(c), c.Params("product_id"), c.Params("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stock)
}

// ListWarehouseStock godoc
// @Summary      Listar saldos de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true   "ID de la bodega"
// @Param        limit         query  int     false  "máx. resultados (default 20)"
// @Param        offset        query  int     false  "desplazamiento"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/inventory/stock/warehouse/{warehouse_id} [get]
func (h *InventoryHandler) ListWarehouseStock(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.queries.ListWarehouseStock(GetCompanyID(c), c.Params("warehouse_id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// HistoryByProduct godoc
// @Summary      Kardex por producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path   string  true   "ID del producto"
// @Param        from        query  string  false  "fecha inicial RFC3339"
// @Param        to          query  string  false  "fecha final RFC3339"
// @Param        limit       query  int     false  "máx. resultados (default 20)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements/product/{product_id} [get]
func (h *InventoryHandler) HistoryByProduct(c *fiber.Ctx) error {
	from, to, ok, err := dateRangeFromQuery(c)
	if !ok {
		return err
	}
	page := pageFromQuery(c)
	list, err := h.queries.HistoryByProduct(GetCompanyID(c), c.Params("product_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// HistoryByWarehouse godoc
// @Summary      Kardex por bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true   "ID de la bodega"
// @Param        from          query  string  false  "fecha inicial RFC3339"
// @Param        to            query  string  false  "fecha final RFC3339"
// @Param        limit         query  int     false  "máx. resultados (default 20)"
// @Param        offset        query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements/warehouse/{warehouse_id} [get]
func (h *InventoryHandler) HistoryByWarehouse(c *fiber.Ctx) error {
	from, to, ok, err := dateRangeFromQuery(c)
	if !ok {
		return err
	}
	page := pageFromQuery(c)
	list, err := h.queries.HistoryByWarehouse(GetCompanyID(c), c.Params("warehouse_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CreateTransfer godoc
// @Summary      Crear traslado entre bodegas
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "traslado"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	transfer, err := h.transfers.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(transfer)
}

// dateRangeFromQuery parsea from/to en RFC3339. Si el formato es inválido
// responde 400 y devuelve ok=false; el handler debe retornar err tal cual.
func dateRangeFromQuery(c *fiber.Ctx) (from, to *time.Time, ok bool, err error) {
	if raw := c.Query("from"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		to = &t
	}
	return from, to, true, nil
}
