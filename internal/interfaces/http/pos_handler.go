package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/application/pos"
)

// POSHandler expone la venta de mostrador.
type POSHandler struct {
	uc *pos.CheckoutUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(uc *pos.CheckoutUseCase) *POSHandler {
	return &POSHandler{uc: uc}
}

// Checkout godoc
// @Summary      Registrar venta POS
// @Description  Todo o nada: si una línea no tiene stock se rechaza la venta completa.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "venta"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/checkout [post]
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	sale, err := h.uc.Checkout(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}
