package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(db Querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `empresaid, nombre, nit, fecharegistro`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	if err := row.Scan(&c.ID, &c.Name, &c.TaxID, &c.RegisteredAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List devuelve las empresas ordenadas por nombre.
func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM empresa ORDER BY nombre, empresaid`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	list := []*entity.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM empresa WHERE empresaid = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByTaxID obtiene una empresa por NIT.
func (r *CompanyRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM empresa WHERE nit = $1`, taxID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by NIT: %w", err)
	}
	return c, nil
}

// Create persiste una nueva empresa y asigna su ID.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	const query = `
		INSERT INTO empresa (nombre, nit, fecharegistro)
		VALUES ($1, $2, $3)
		RETURNING empresaid`
	err := r.db.QueryRow(ctx, query, company.Name, company.TaxID, company.RegisteredAt).Scan(&company.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTaxIDExists
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// Update actualiza nombre y NIT.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	cmd, err := r.db.Exec(ctx, `UPDATE empresa SET nombre = $2, nit = $3 WHERE empresaid = $1`,
		company.ID, company.Name, company.TaxID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTaxIDExists
		}
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la empresa. Las FK de usuario y encuesta (RESTRICT) impiden
// borrar empresas con dependientes; la tabla de la FK violada decide el error.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM empresa WHERE empresaid = $1`, id)
	if err != nil {
		return mapCompanyDeleteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapCompanyDeleteError(err error) error {
	if !isForeignKeyViolation(err) {
		return fmt.Errorf("delete company: %w", err)
	}
	switch violatedTable(err) {
	case "usuario":
		return domain.ErrCompanyHasUsers
	case "encuesta":
		return domain.ErrCompanyHasSurveys
	}
	return fmt.Errorf("%w: la empresa tiene registros dependientes", domain.ErrConstraint)
}
