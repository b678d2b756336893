package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/pkg/jwt"
	"github.com/jhoicas/Encuestas-api/pkg/logger"
	"github.com/jhoicas/Encuestas-api/pkg/password"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg, log: log}
}

// Login verifica email/password y estado, genera JWT y retorna token + usuario con nombre de empresa.
// Orden de comprobación: usuario inexistente, contraseña, usuario inactivo.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !password.Verify(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domain.ErrInactiveUser
	}

	if password.NeedsRehash(user.PasswordHash) {
		uc.rehash(ctx, user, in.Password)
	}

	companyName := entity.UnknownCompanyName
	company, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company != nil {
		companyName = company.Name
	}
	user.CompanyName = companyName

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Usuario:   *toUserResponse(user),
	}, nil
}

// rehash reemplaza una credencial heredada en texto plano por su hash bcrypt.
// Un fallo aquí no impide el login.
func (uc *AuthUseCase) rehash(ctx context.Context, user *entity.User, plain string) {
	hash, err := password.Hash(plain)
	if err != nil {
		uc.log.Warn().Err(err).Int64("usuario_id", user.ID).Msg("no se pudo hashear la contraseña heredada")
		return
	}
	updated := *user
	updated.PasswordHash = hash
	if err := uc.userRepo.Update(ctx, &updated); err != nil {
		uc.log.Warn().Err(err).Int64("usuario_id", user.ID).Msg("no se pudo actualizar la contraseña heredada")
		return
	}
	user.PasswordHash = hash
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
