// Package seed carga los datos de demostración: tres empresas y un usuario por rol.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/pkg/password"
)

// DemoPassword contraseña de los usuarios de demostración.
const DemoPassword = "demo123"

// Result resumen de lo insertado.
type Result struct {
	Companies int
	Users     int
	Skipped   bool // ya había empresas; no se tocó nada
}

type demoUser struct {
	email, first, last, role string
}

var demoCompanies = []struct {
	name, taxID string
	registered  time.Time
}{
	{"TechCorp Solutions", "900123456-7", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
	{"Innovatech Group", "900234567-8", time.Date(2024, 3, 20, 14, 30, 0, 0, time.UTC)},
	{"Global Services S.A.", "900345678-9", time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC)},
}

var demoUsers = []demoUser{
	{"admin@empresa.com", "Carlos", "Rodríguez", entity.RoleAdmin},
	{"creador@empresa.com", "María", "González", entity.RoleCreator},
	{"analista@empresa.com", "Juan", "Martínez", entity.RoleAnalyst},
}

// Run inserta los datos de demostración si el almacén no tiene empresas.
// Los usuarios quedan en la primera empresa.
func Run(ctx context.Context, repos repository.Repositories) (*Result, error) {
	existing, err := repos.Companies.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &Result{Skipped: true}, nil
	}

	hash, err := password.Hash(DemoPassword)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	var first int64
	for i, dc := range demoCompanies {
		c := &entity.Company{Name: dc.name, TaxID: dc.taxID, RegisteredAt: dc.registered}
		if err := repos.Companies.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("seed: empresa %s: %w", dc.name, err)
		}
		if i == 0 {
			first = c.ID
		}
		res.Companies++
	}

	created := demoCompanies[0].registered
	for i, du := range demoUsers {
		u := &entity.User{
			CompanyID:    first,
			Email:        du.email,
			PasswordHash: hash,
			FirstName:    du.first,
			LastName:     du.last,
			Role:         du.role,
			Status:       entity.UserActive,
			CreatedAt:    created.AddDate(0, 0, i),
		}
		if err := repos.Users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("seed: usuario %s: %w", du.email, err)
		}
		res.Users++
	}
	return res, nil
}
