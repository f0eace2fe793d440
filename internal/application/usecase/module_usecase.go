package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

// ModuleUseCase activación y consulta de módulos SaaS por empresa.
// Las rutas de cada módulo exigen activación vigente vía middleware.
type ModuleUseCase struct {
	repo repository.CompanyRepository
}

// NewModuleUseCase construye el caso de uso.
func NewModuleUseCase(repo repository.CompanyRepository) *ModuleUseCase {
	return &ModuleUseCase{repo: repo}
}

// Activate habilita un módulo para la empresa, con vencimiento opcional.
func (uc *ModuleUseCase) Activate(companyID string, in dto.ActivateModuleRequest) error {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	return uc.repo.ActivateModule(&entity.CompanyModule{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ModuleName:  in.ModuleName,
		IsActive:    true,
		ActivatedAt: now,
		ExpiresAt:   in.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// HasActive indica si la empresa tiene el módulo activo y sin vencer.
func (uc *ModuleUseCase) HasActive(companyID, moduleName string) (bool, error) {
	return uc.repo.HasActiveModule(companyID, moduleName)
}
