package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyUseCase_ListConConteoDeUsuarios(t *testing.T) {
	f := newFixture(t)
	uc := NewCompanyUseCase(f.repos.Companies, f.repos.Users)

	out, err := uc.List(context.Background(), f.admin)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)

	counts := map[string]int{}
	for _, c := range out.Items {
		counts[c.Nombre] = c.TotalUsuarios
	}
	assert.Equal(t, 3, counts["TechCorp Solutions"])
	assert.Equal(t, 1, counts["Innovatech Group"])
}

func TestCompanyUseCase_SoloAdmin(t *testing.T) {
	f := newFixture(t)
	uc := NewCompanyUseCase(f.repos.Companies, f.repos.Users)
	ctx := context.Background()

	_, err := uc.List(ctx, f.creador)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Create(ctx, f.analista, dto.CompanyRequest{Nombre: "X", NIT: "1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCompanyUseCase_CreateNITDuplicado(t *testing.T) {
	f := newFixture(t)
	uc := NewCompanyUseCase(f.repos.Companies, f.repos.Users)
	ctx := context.Background()

	out, err := uc.Create(ctx, f.admin, dto.CompanyRequest{Nombre: " Global Services S.A. ", NIT: "900345678-9"})
	require.NoError(t, err)
	assert.Equal(t, "Global Services S.A.", out.Nombre)
	assert.NotZero(t, out.EmpresaID)

	_, err = uc.Create(ctx, f.admin, dto.CompanyRequest{Nombre: "Copia", NIT: "900345678-9"})
	assert.ErrorIs(t, err, domain.ErrTaxIDExists)
	assert.Equal(t, "el NIT ya existe", domain.Message(err))
}

func TestCompanyUseCase_Update(t *testing.T) {
	f := newFixture(t)
	uc := NewCompanyUseCase(f.repos.Companies, f.repos.Users)
	ctx := context.Background()

	_, err := uc.Update(ctx, f.admin, f.innova.ID, dto.CompanyRequest{Nombre: "Innovatech", NIT: f.techCorp.TaxID})
	assert.ErrorIs(t, err, domain.ErrTaxIDExists)

	out, err := uc.Update(ctx, f.admin, f.innova.ID, dto.CompanyRequest{Nombre: "Innovatech", NIT: f.innova.TaxID})
	require.NoError(t, err)
	assert.Equal(t, "Innovatech", out.Nombre)

	_, err = uc.Update(ctx, f.admin, 999, dto.CompanyRequest{Nombre: "X", NIT: "Y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyUseCase_DeleteConUsuarios(t *testing.T) {
	f := newFixture(t)
	uc := NewCompanyUseCase(f.repos.Companies, f.repos.Users)
	ctx := context.Background()

	err := uc.Delete(ctx, f.admin, f.innova.ID)
	assert.ErrorIs(t, err, domain.ErrCompanyHasUsers)
	assert.Equal(t, "no se puede eliminar una empresa con usuarios asociados", domain.Message(err))

	c, err := f.repos.Companies.GetByID(ctx, f.innova.ID)
	require.NoError(t, err)
	assert.NotNil(t, c)

	empty, err := uc.Create(ctx, f.admin, dto.CompanyRequest{Nombre: "Vacía", NIT: "1"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, f.admin, empty.EmpresaID))
	assert.ErrorIs(t, uc.Delete(ctx, f.admin, empty.EmpresaID), domain.ErrNotFound)
}

func TestCompanyUseCase_DeleteConEncuestas(t *testing.T) {
	f := newFixture(t)
	uc := NewCompanyUseCase(f.repos.Companies, f.repos.Users)
	ctx := context.Background()

	c, err := uc.Create(ctx, f.admin, dto.CompanyRequest{Nombre: "Global Services S.A.", NIT: "900345678-9"})
	require.NoError(t, err)
	s := &entity.Survey{CompanyID: c.EmpresaID, CreatorID: f.admin.UserID, Title: "Clima", Status: entity.SurveyDraft, CreatedAt: time.Now().UTC()}
	require.NoError(t, f.repos.Surveys.Create(ctx, s))

	err = uc.Delete(ctx, f.admin, c.EmpresaID)
	assert.ErrorIs(t, err, domain.ErrCompanyHasSurveys)
	assert.Equal(t, "no se puede eliminar una empresa con encuestas asociadas", domain.Message(err))

	got, err := f.repos.Surveys.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
