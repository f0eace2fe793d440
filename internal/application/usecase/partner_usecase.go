package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
)

// PartnerUseCase casos de uso para proveedores y clientes.
type PartnerUseCase struct {
	suppliers repository.SupplierRepository
	customers repository.CustomerRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(suppliers repository.SupplierRepository, customers repository.CustomerRepository) *PartnerUseCase {
	return &PartnerUseCase{suppliers: suppliers, customers: customers}
}

// CreateSupplier crea un proveedor para la empresa.
func (uc *PartnerUseCase) CreateSupplier(companyID string, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.suppliers.Create(supplier); err != nil {
		return nil, err
	}
	return &dto.PartnerResponse{
		ID: supplier.ID, CompanyID: supplier.CompanyID, Name: supplier.Name,
		TaxID: supplier.TaxID, Email: supplier.Email, Phone: supplier.Phone,
		Address: supplier.Address, CreatedAt: supplier.CreatedAt,
	}, nil
}

// ListSuppliers lista proveedores de la empresa.
func (uc *PartnerUseCase) ListSuppliers(companyID string, limit, offset int) ([]dto.PartnerResponse, error) {
	list, err := uc.suppliers.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartnerResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.PartnerResponse{
			ID: s.ID, CompanyID: s.CompanyID, Name: s.Name, TaxID: s.TaxID,
			Email: s.Email, Phone: s.Phone, Address: s.Address, CreatedAt: s.CreatedAt,
		})
	}
	return items, nil
}

// CreateCustomer crea un cliente para la empresa.
func (uc *PartnerUseCase) CreateCustomer(companyID string, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customers.Create(customer); err != nil {
		return nil, err
	}
	return &dto.PartnerResponse{
		ID: customer.ID, CompanyID: customer.CompanyID, Name: customer.Name,
		TaxID: customer.TaxID, Email: customer.Email, Phone: customer.Phone,
		Address: customer.Address, CreatedAt: customer.CreatedAt,
	}, nil
}

// ListCustomers lista clientes de la empresa.
func (uc *PartnerUseCase) ListCustomers(companyID string, limit, offset int) ([]dto.PartnerResponse, error) {
	list, err := uc.customers.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartnerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.PartnerResponse{
			ID: c.ID, CompanyID: c.CompanyID, Name: c.Name, TaxID: c.TaxID,
			Email: c.Email, Phone: c.Phone, Address: c.Address, CreatedAt: c.CreatedAt,
		})
	}
	return items, nil
}
