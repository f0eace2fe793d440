package repository

import "github.com/orbis-erp/orbis-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company y sus módulos.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	HasActiveModule(companyID, moduleName string) (bool, error)
	ActivateModule(module *entity.CompanyModule) error
}
