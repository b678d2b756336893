package repository

import (
	"context"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. GetBy* devuelve (nil, nil) si no existe.
type CompanyRepository interface {
	List(ctx context.Context) ([]*entity.Company, error)
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error)
	// Create asigna ID y RegisteredAt si vienen vacíos.
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company) error
	// Delete devuelve domain.ErrCompanyHasUsers si la empresa tiene usuarios y
	// domain.ErrCompanyHasSurveys si tiene encuestas.
	Delete(ctx context.Context, id int64) error
}
