package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/policy"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo  repository.CompanyRepository
	users repository.UserRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, users repository.UserRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, users: users}
}

// List devuelve las empresas con su número de usuarios. Ambas lecturas corren en paralelo.
func (uc *CompanyUseCase) List(ctx context.Context, p policy.Principal) (*dto.CompanyListResponse, error) {
	if !policy.CanManageCompanies(p) {
		return nil, domain.ErrForbidden
	}
	var (
		list   []*entity.Company
		counts map[int64]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = uc.repo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = uc.users.CountByCompany(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out := entityToCompanyResponse(c)
		out.TotalUsuarios = counts[c.ID]
		items = append(items, *out)
	}
	return &dto.CompanyListResponse{Items: items}, nil
}

// Create crea una empresa. Devuelve domain.ErrTaxIDExists si el NIT ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, p policy.Principal, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if !policy.CanManageCompanies(p) {
		return nil, domain.ErrForbidden
	}
	name, nit := strings.TrimSpace(in.Nombre), strings.TrimSpace(in.NIT)
	if name == "" || nit == "" {
		return nil, domain.Validationf("nombre y NIT son requeridos")
	}
	existing, err := uc.repo.GetByTaxID(ctx, nit)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrTaxIDExists
	}
	company := &entity.Company{Name: name, TaxID: nit, RegisteredAt: time.Now().UTC()}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Update cambia nombre y NIT. El NIT no puede pertenecer a otra empresa.
func (uc *CompanyUseCase) Update(ctx context.Context, p policy.Principal, id int64, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if !policy.CanManageCompanies(p) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	name, nit := strings.TrimSpace(in.Nombre), strings.TrimSpace(in.NIT)
	if name == "" || nit == "" {
		return nil, domain.Validationf("nombre y NIT son requeridos")
	}
	if nit != company.TaxID {
		other, err := uc.repo.GetByTaxID(ctx, nit)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrTaxIDExists
		}
	}
	company.Name, company.TaxID = name, nit
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Delete elimina la empresa si no tiene usuarios (domain.ErrCompanyHasUsers) ni
// encuestas (domain.ErrCompanyHasSurveys, lo comprueba el repositorio).
func (uc *CompanyUseCase) Delete(ctx context.Context, p policy.Principal, id int64) error {
	if !policy.CanManageCompanies(p) {
		return domain.ErrForbidden
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	counts, err := uc.users.CountByCompany(ctx)
	if err != nil {
		return err
	}
	if counts[id] > 0 {
		return domain.ErrCompanyHasUsers
	}
	return uc.repo.Delete(ctx, id)
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		EmpresaID:     c.ID,
		Nombre:        c.Name,
		NIT:           c.TaxID,
		FechaRegistro: c.RegisteredAt,
	}
}
