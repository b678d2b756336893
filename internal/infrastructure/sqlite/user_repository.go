package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre gorm.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepository construye el adaptador.
func NewUserRepository(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// List usuarios ordenados por ID.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Order("usuarioid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]*entity.User, 0, len(rows))
	for i := range rows {
		out = append(out, toUser(&rows[i]))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.first(ctx, "usuarioid = ?", id)
}

// GetByEmail obtiene un usuario por email sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepo) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).First(&m, query, arg).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return toUser(&m), nil
}

// Create persiste un nuevo usuario y asigna su ID.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	m := fromUser(user)
	m.UsuarioID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return mapUserError("insert user", err)
	}
	user.ID = m.UsuarioID
	return nil
}

// Update reemplaza los campos editables del usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	m := fromUser(user)
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("usuarioid = ?", user.ID).
		Updates(map[string]any{
			"empresaid":    m.EmpresaID,
			"email":        m.Email,
			"passwordhash": m.PasswordHash,
			"nombre":       m.Nombre,
			"apellido":     m.Apellido,
			"rol":          m.Rol,
			"estado":       m.Estado,
		})
	if res.Error != nil {
		return mapUserError("update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCompany número de usuarios por empresa.
func (r *UserRepo) CountByCompany(ctx context.Context) (map[int64]int, error) {
	var rows []struct {
		EmpresaID int64
		Total     int
	}
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Select("empresaid AS empresa_id, COUNT(*) AS total").
		Group("empresaid").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count users by company: %w", err)
	}
	out := make(map[int64]int, len(rows))
	for _, row := range rows {
		out[row.EmpresaID] = row.Total
	}
	return out, nil
}

func mapUserError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrEmailExists
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: la empresa no existe", domain.ErrConstraint)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
