package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `usuarioid, empresaid, email, passwordhash, nombre, apellido, rol, estado, fechacreacion`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.Role, &u.Status, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List devuelve todos los usuarios ordenados por ID.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM usuario ORDER BY usuarioid`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	list := []*entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.first(ctx, `SELECT `+userColumns+` FROM usuario WHERE usuarioid = $1`, id)
}

// GetByEmail obtiene un usuario por email (cualquier empresa, sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, `SELECT `+userColumns+` FROM usuario WHERE LOWER(email) = $1 LIMIT 1`,
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepo) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Create persiste un nuevo usuario y asigna su ID.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
		INSERT INTO usuario (empresaid, email, passwordhash, nombre, apellido, rol, estado, fechacreacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING usuarioid`
	err := r.db.QueryRow(ctx, query,
		user.CompanyID, strings.ToLower(user.Email), user.PasswordHash,
		user.FirstName, user.LastName, user.Role, user.Status, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return mapUserError("insert user", err)
	}
	return nil
}

// Update reemplaza los campos editables del usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	const query = `
		UPDATE usuario
		   SET empresaid = $2, email = $3, passwordhash = $4, nombre = $5,
		       apellido = $6, rol = $7, estado = $8
		 WHERE usuarioid = $1`
	cmd, err := r.db.Exec(ctx, query,
		user.ID, user.CompanyID, strings.ToLower(user.Email), user.PasswordHash,
		user.FirstName, user.LastName, user.Role, user.Status,
	)
	if err != nil {
		return mapUserError("update user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCompany número de usuarios por empresa.
func (r *UserRepo) CountByCompany(ctx context.Context) (map[int64]int, error) {
	rows, err := r.db.Query(ctx, `SELECT empresaid, COUNT(*) FROM usuario GROUP BY empresaid`)
	if err != nil {
		return nil, fmt.Errorf("count users by company: %w", err)
	}
	defer rows.Close()

	out := map[int64]int{}
	for rows.Next() {
		var companyID int64
		var total int
		if err := rows.Scan(&companyID, &total); err != nil {
			return nil, fmt.Errorf("scan user count: %w", err)
		}
		out[companyID] = total
	}
	return out, rows.Err()
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
