package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/application/lookup"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/policy"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/pkg/password"
	"github.com/jhoicas/Encuestas-api/pkg/textsearch"
	"golang.org/x/sync/errgroup"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo            repository.UserRepository
	companies       repository.CompanyRepository
	defaultPassword string
}

// NewUserUseCase construye el caso de uso. defaultPassword se asigna a usuarios creados sin contraseña.
func NewUserUseCase(repo repository.UserRepository, companies repository.CompanyRepository, defaultPassword string) *UserUseCase {
	return &UserUseCase{repo: repo, companies: companies, defaultPassword: defaultPassword}
}

// List usuarios visibles para p con filtros y estadísticas del conjunto resultante.
func (uc *UserUseCase) List(ctx context.Context, p policy.Principal, f dto.UserFilter) (*dto.UserListResponse, error) {
	var (
		list  []*entity.User
		names *lookup.CompanyNames
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = uc.repo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		names, err = lookup.LoadCompanyNames(gctx, uc.companies)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{Items: []dto.UserResponse{}}
	for _, u := range policy.FilterUsers(p, list) {
		if f.EmpresaID != 0 && u.CompanyID != f.EmpresaID {
			continue
		}
		if f.Estado != "" && f.Estado != "Todos" && u.Status != f.Estado {
			continue
		}
		if !textsearch.Contains(f.Q, u.FirstName, u.LastName, u.Email) {
			continue
		}
		u.CompanyName = names.Name(u.CompanyID)
		resp.Items = append(resp.Items, *entityToUserResponse(u))
		addUserStats(&resp.Stats, u)
	}
	return resp, nil
}

func addUserStats(s *dto.UserStats, u *entity.User) {
	s.Total++
	if u.IsActive() {
		s.Activos++
	}
	switch u.Role {
	case entity.RoleAdmin:
		s.Admins++
	case entity.RoleCreator:
		s.Creadores++
	case entity.RoleAnalyst:
		s.Analistas++
	}
}

// Create crea un usuario. Solo Admin elige la empresa; el resto crea en la propia.
func (uc *UserUseCase) Create(ctx context.Context, p policy.Principal, in dto.UserRequest) (*dto.UserResponse, error) {
	user := &entity.User{
		CompanyID: policy.ResolveCompanyForUser(p, in.EmpresaID),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.apply(ctx, p, user, in); err != nil {
		return nil, err
	}

	plain := in.Password
	if plain == "" {
		plain = uc.defaultPassword
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.withCompanyName(ctx, user)
}

// Update modifica un usuario visible para p. Conservar el propio email no es conflicto.
func (uc *UserUseCase) Update(ctx context.Context, p policy.Principal, id int64, in dto.UserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanSeeUser(p, user) {
		return nil, domain.ErrForbidden
	}
	if p.IsAdmin() && in.EmpresaID != 0 {
		user.CompanyID = in.EmpresaID
	}
	if err := uc.apply(ctx, p, user, in); err != nil {
		return nil, err
	}
	if in.Password != "" {
		hash, err := password.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.withCompanyName(ctx, user)
}

// apply valida la entrada y copia los campos editables sobre user.
func (uc *UserUseCase) apply(ctx context.Context, p policy.Principal, user *entity.User, in dto.UserRequest) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validEmail(email) {
		return domain.Validationf("email inválido")
	}
	if strings.TrimSpace(in.Nombre) == "" {
		return domain.Validationf("el nombre es requerido")
	}
	if !entity.ValidRole(in.Rol) {
		return domain.Validationf("rol inválido: %q", in.Rol)
	}
	if in.Rol == entity.RoleAdmin && !p.IsAdmin() && user.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	status := in.Estado
	if status == "" {
		status = user.Status
	}
	if status == "" {
		status = entity.UserActive
	}
	if status != entity.UserActive && status != entity.UserInactive {
		return domain.Validationf("estado inválido: %q", status)
	}

	company, err := uc.companies.GetByID(ctx, user.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.Validationf("la empresa %d no existe", user.CompanyID)
	}

	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != user.ID {
		return domain.ErrEmailExists
	}

	user.Email = email
	user.FirstName = strings.TrimSpace(in.Nombre)
	user.LastName = strings.TrimSpace(in.Apellido)
	user.Role = in.Rol
	user.Status = status
	user.CompanyName = company.Name
	return nil
}

func (uc *UserUseCase) withCompanyName(ctx context.Context, u *entity.User) (*dto.UserResponse, error) {
	if u.CompanyName == "" {
		c, err := uc.companies.GetByID(ctx, u.CompanyID)
		if err != nil {
			return nil, err
		}
		u.CompanyName = entity.UnknownCompanyName
		if c != nil {
			u.CompanyName = c.Name
		}
	}
	return entityToUserResponse(u), nil
}

var emailValidator = validator.New()

func validEmail(s string) bool {
	return emailValidator.Var(s, "required,email") == nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		UsuarioID:     u.ID,
		EmpresaID:     u.CompanyID,
		EmpresaNombre: u.CompanyName,
		Email:         u.Email,
		Nombre:        u.FirstName,
		Apellido:      u.LastName,
		Rol:           u.Role,
		Estado:        u.Status,
		FechaCreacion: u.CreatedAt,
	}
}
