package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
)

// moduleChecker contrato mínimo del middleware para verificar módulos SaaS.
// Lo implementa *usecase.ModuleUseCase; la interfaz evita el import circular.
type moduleChecker interface {
	HasActive(companyID, moduleName string) (bool, error)
}

// RequireModule verifica que la empresa del token tenga el módulo activo y
// sin vencer. Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 403 Forbidden → módulo no contratado o vencido.
//   - 503 Service Unavailable → fallo de infraestructura al consultar.
func RequireModule(moduleName string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}
		active, err := checker.HasActive(companyID, moduleName)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + moduleName + "' no está activo para esta empresa",
			})
		}
		return c.Next()
	}
}
