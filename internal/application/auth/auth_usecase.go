package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/orbis-erp/orbis-api/internal/application/dto"
	"github.com/orbis-erp/orbis-api/internal/domain"
	"github.com/orbis-erp/orbis-api/internal/domain/entity"
	"github.com/orbis-erp/orbis-api/internal/domain/repository"
	"github.com/orbis-erp/orbis-api/pkg/jwt"
)

// UseCase registro y login de usuarios. El token JWT lleva user_id, company_id
// y role: toda petición posterior queda acotada a esa empresa.
type UseCase struct {
	users      repository.UserRepository
	companies  repository.CompanyRepository
	secret     string
	issuer     string
	expMinutes int
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(users repository.UserRepository, companies repository.CompanyRepository, secret, issuer string, expMinutes int) *UseCase {
	return &UseCase{users: users, companies: companies, secret: secret, issuer: issuer, expMinutes: expMinutes}
}

// Register crea un usuario en una empresa existente. El password se guarda
// como hash bcrypt, nunca plano.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	company, err := uc.companies.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.users.GetByEmailAndCompany(in.Email, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login valida credenciales y emite el JWT de sesión.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.secret, user.ID, user.CompanyID, user.Role, uc.issuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
