package redisstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo empresas como documentos empresa:<id>.
type CompanyRepo struct {
	rdb *redis.Client
}

// NewCompanyRepository construye el adaptador.
func NewCompanyRepository(rdb *redis.Client) *CompanyRepo {
	return &CompanyRepo{rdb: rdb}
}

// List empresas ordenadas por nombre.
func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	docs, err := loadAll(ctx, r.rdb, setCompanies, companyKey)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Company, 0, len(docs))
	for _, d := range docs {
		c, err := decodeCompany(d)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	return getCompany(ctx, r.rdb, id)
}

func getCompany(ctx context.Context, rdb redis.Cmdable, id int64) (*entity.Company, error) {
	data, err := getDoc(ctx, rdb, companyKey(id))
	if err != nil || data == nil {
		return nil, err
	}
	return decodeCompany(data)
}

// GetByTaxID obtiene una empresa por NIT vía el índice empresa:nit:<nit>.
func (r *CompanyRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error) {
	id, err := getID(ctx, r.rdb, taxIDKey(taxID))
	if err != nil || id == 0 {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Create reserva el NIT, asigna ID y guarda el documento.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	id, err := nextID(ctx, r.rdb, "empresa")
	if err != nil {
		return err
	}
	ok, err := reserve(ctx, r.rdb, taxIDKey(company.TaxID), id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrTaxIDExists
	}

	c := *company
	c.ID = id
	data, err := encodeCompany(&c)
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, companyKey(id), data, 0)
		pipe.SAdd(ctx, setCompanies, id)
		return nil
	})
	if err != nil {
		_ = r.rdb.Del(ctx, taxIDKey(company.TaxID)).Err()
		return err
	}
	company.ID = id
	return nil
}

// Update actualiza nombre y NIT, moviendo el índice si el NIT cambia.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	current, err := r.GetByID(ctx, company.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	if current.TaxID != company.TaxID {
		ok, err := reserve(ctx, r.rdb, taxIDKey(company.TaxID), company.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrTaxIDExists
		}
	}

	updated := *current
	updated.Name, updated.TaxID = company.Name, company.TaxID
	data, err := encodeCompany(&updated)
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, companyKey(company.ID), data, 0)
		if current.TaxID != company.TaxID {
			pipe.Del(ctx, taxIDKey(current.TaxID))
		}
		return nil
	})
	if err != nil && current.TaxID != company.TaxID {
		_ = r.rdb.Del(ctx, taxIDKey(company.TaxID)).Err()
	}
	return err
}

// Delete elimina la empresa si no tiene usuarios ni encuestas. El WATCH sobre
// empresa:<id>:usuarios y empresa:<id>:encuestas aborta el borrado si otro cliente
// asigna un dependiente entre la comprobación y el EXEC.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	users, surveys := companyUsersKey(id), companySurveysKey(id)
	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := getCompany(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		n, err := tx.SCard(ctx, users).Result()
		if err != nil {
			return fmt.Errorf("redis: scard %s: %w", users, err)
		}
		if n > 0 {
			return domain.ErrCompanyHasUsers
		}
		n, err = tx.SCard(ctx, surveys).Result()
		if err != nil {
			return fmt.Errorf("redis: scard %s: %w", surveys, err)
		}
		if n > 0 {
			return domain.ErrCompanyHasSurveys
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, companyKey(id), taxIDKey(current.TaxID), users, surveys)
			pipe.SRem(ctx, setCompanies, id)
			return nil
		})
		return err
	}, companyKey(id), users, surveys)
	return txErr(err)
}
