package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"gorm.io/gorm"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository sobre gorm.
type CompanyRepo struct {
	db *gorm.DB
}

// NewCompanyRepository construye el adaptador.
func NewCompanyRepository(db *gorm.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// List empresas ordenadas por nombre.
func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	var rows []companyModel
	if err := r.db.WithContext(ctx).Order("nombre, empresaid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	out := make([]*entity.Company, 0, len(rows))
	for i := range rows {
		out = append(out, toCompany(&rows[i]))
	}
	return out, nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	var m companyModel
	err := r.db.WithContext(ctx).First(&m, "empresaid = ?", id).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	return toCompany(&m), nil
}

// GetByTaxID obtiene una empresa por NIT.
func (r *CompanyRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error) {
	var m companyModel
	err := r.db.WithContext(ctx).First(&m, "nit = ?", taxID).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get company by NIT: %w", err)
	}
	return toCompany(&m), nil
}

// Create persiste una nueva empresa y asigna su ID.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	m := fromCompany(company)
	m.EmpresaID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTaxIDExists
		}
		return fmt.Errorf("insert company: %w", err)
	}
	company.ID = m.EmpresaID
	return nil
}

// Update actualiza nombre y NIT.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	res := r.db.WithContext(ctx).Model(&companyModel{}).
		Where("empresaid = ?", company.ID).
		Updates(map[string]any{"nombre": company.Name, "nit": company.TaxID})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.ErrTaxIDExists
		}
		return fmt.Errorf("update company: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la empresa si no tiene usuarios ni encuestas asociados.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users, surveys int64
		if err := tx.Model(&userModel{}).Where("empresaid = ?", id).Count(&users).Error; err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if users > 0 {
			return domain.ErrCompanyHasUsers
		}
		if err := tx.Model(&surveyModel{}).Where("empresaid = ?", id).Count(&surveys).Error; err != nil {
			return fmt.Errorf("count surveys: %w", err)
		}
		if surveys > 0 {
			return domain.ErrCompanyHasSurveys
		}
		res := tx.Delete(&companyModel{}, "empresaid = ?", id)
		if res.Error != nil {
			if isForeignKeyViolation(res.Error) {
				return fmt.Errorf("%w: la empresa tiene registros dependientes", domain.ErrConstraint)
			}
			return fmt.Errorf("delete company: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
