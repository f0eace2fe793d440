package repository

import "github.com/orbis-erp/orbis-api/internal/domain/entity"

// POSSaleRepository define el puerto de persistencia para ventas POS.
type POSSaleRepository interface {
	Create(sale *entity.POSSale) error
	GetByID(id string) (*entity.POSSale, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.POSSale, error)
}
