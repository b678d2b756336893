package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/policy"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
	"github.com/jhoicas/Encuestas-api/internal/infrastructure/sqlite"
	"github.com/stretchr/testify/require"
)

// fixture base embebida con dos empresas y un usuario por rol en la primera.
type fixture struct {
	repos    repository.Repositories
	techCorp *entity.Company
	innova   *entity.Company
	admin    policy.Principal
	creador  policy.Principal
	analista policy.Principal
	externo  policy.Principal // Creador de la segunda empresa
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	f := &fixture{repos: sqlite.NewRepositories(db, survey.LinkBuilder{BaseURL: "https://encuestas.empresa.com"})}
	now := time.Now().UTC()

	f.techCorp = &entity.Company{Name: "TechCorp Solutions", TaxID: "900123456-7", RegisteredAt: now}
	f.innova = &entity.Company{Name: "Innovatech Group", TaxID: "900234567-8", RegisteredAt: now}
	require.NoError(t, f.repos.Companies.Create(ctx, f.techCorp))
	require.NoError(t, f.repos.Companies.Create(ctx, f.innova))

	mk := func(companyID int64, email, role string) policy.Principal {
		u := &entity.User{CompanyID: companyID, Email: email, PasswordHash: "demo123", FirstName: role, Role: role, Status: entity.UserActive, CreatedAt: now}
		require.NoError(t, f.repos.Users.Create(ctx, u))
		return policy.Principal{UserID: u.ID, CompanyID: companyID, Role: role}
	}
	f.admin = mk(f.techCorp.ID, "admin@empresa.com", entity.RoleAdmin)
	f.creador = mk(f.techCorp.ID, "creador@empresa.com", entity.RoleCreator)
	f.analista = mk(f.techCorp.ID, "analista@empresa.com", entity.RoleAnalyst)
	f.externo = mk(f.innova.ID, "creador@innovatech.com", entity.RoleCreator)
	return f
}
