package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepos(t *testing.T) repository.Repositories {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return NewRepositories(db, survey.LinkBuilder{BaseURL: "https://encuestas.empresa.com"})
}

func TestCompanyRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	c := &entity.Company{Name: "TechCorp Solutions", TaxID: "900123456-7", RegisteredAt: time.Now().UTC()}
	require.NoError(t, repos.Companies.Create(ctx, c))
	assert.NotZero(t, c.ID)

	dup := &entity.Company{Name: "Otra", TaxID: "900123456-7", RegisteredAt: time.Now().UTC()}
	assert.ErrorIs(t, repos.Companies.Create(ctx, dup), domain.ErrTaxIDExists)

	got, err := repos.Companies.GetByTaxID(ctx, "900123456-7")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)

	missing, err := repos.Companies.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	c.Name = "TechCorp"
	require.NoError(t, repos.Companies.Update(ctx, c))
	got, _ = repos.Companies.GetByID(ctx, c.ID)
	assert.Equal(t, "TechCorp", got.Name)

	require.NoError(t, repos.Companies.Delete(ctx, c.ID))
	assert.ErrorIs(t, repos.Companies.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestCompanyRepo_DeleteConUsuarios(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	c := &entity.Company{Name: "Innovatech Group", TaxID: "900234567-8", RegisteredAt: time.Now().UTC()}
	require.NoError(t, repos.Companies.Create(ctx, c))
	u := &entity.User{CompanyID: c.ID, Email: "admin@innovatech.com", PasswordHash: "x", FirstName: "Ana", Role: entity.RoleAdmin, Status: entity.UserActive, CreatedAt: time.Now().UTC()}
	require.NoError(t, repos.Users.Create(ctx, u))

	err := repos.Companies.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCompanyHasUsers)

	still, err := repos.Companies.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.NotNil(t, still, "la empresa no se elimina")

	counts, err := repos.Users.CountByCompany(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[c.ID])
}

func TestOpen_ClavesForaneasEnTablasHijas(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	type foreignKey struct {
		Table string `gorm:"column:table"`
		From  string `gorm:"column:from"`
	}
	refs := func(table string) []string {
		var fks []foreignKey
		require.NoError(t, db.Raw("PRAGMA foreign_key_list(" + table + ")").Scan(&fks).Error)
		out := make([]string, 0, len(fks))
		for _, fk := range fks {
			out = append(out, fk.Table+"."+fk.From)
		}
		return out
	}
	assert.Contains(t, refs("usuario"), "empresa.empresaid")
	assert.Contains(t, refs("encuesta"), "empresa.empresaid")
	assert.Empty(t, refs("empresa"), "empresa no referencia a sus hijos")

	// Con la FK mal orientada cualquier insert en empresa fallaba.
	for _, nit := range []string{"900123456-7", "900234567-8"} {
		require.NoError(t, db.Create(&companyModel{Nombre: "Empresa " + nit, NIT: nit, FechaRegistro: time.Now().UTC()}).Error)
	}
}

func TestCompanyRepo_DeleteConEncuestas(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	c := &entity.Company{Name: "Global Services S.A.", TaxID: "900345678-9", RegisteredAt: time.Now().UTC()}
	require.NoError(t, repos.Companies.Create(ctx, c))
	s := &entity.Survey{CompanyID: c.ID, Title: "Clima", Status: entity.SurveyDraft, CreatedAt: time.Now().UTC()}
	require.NoError(t, repos.Surveys.Create(ctx, s))

	err := repos.Companies.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCompanyHasSurveys)
	assert.ErrorIs(t, err, domain.ErrConstraint)

	got, err := repos.Surveys.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "la encuesta no queda huérfana")
	assert.Equal(t, c.ID, got.CompanyID)

	orphan := &entity.Survey{CompanyID: 999, Title: "Sin empresa", Status: entity.SurveyDraft, CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, repos.Surveys.Create(ctx, orphan), domain.ErrConstraint)
}

func TestUserRepo_EmailUnicoSinMayusculas(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	c := &entity.Company{Name: "Global Services S.A.", TaxID: "900345678-9", RegisteredAt: time.Now().UTC()}
	require.NoError(t, repos.Companies.Create(ctx, c))

	u := &entity.User{CompanyID: c.ID, Email: "Admin@GlobalServices.com", PasswordHash: "x", FirstName: "Luis", Role: entity.RoleAdmin, Status: entity.UserInactive, CreatedAt: time.Now().UTC()}
	require.NoError(t, repos.Users.Create(ctx, u))

	got, err := repos.Users.GetByEmail(ctx, "ADMIN@globalservices.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "admin@globalservices.com", got.Email)
	assert.Equal(t, entity.UserInactive, got.Status)

	dup := &entity.User{CompanyID: c.ID, Email: "admin@globalservices.com", PasswordHash: "x", FirstName: "Otro", Role: entity.RoleAnalyst, Status: entity.UserActive, CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, repos.Users.Create(ctx, dup), domain.ErrEmailExists)
}

func scaleSurvey(companyID int64) *entity.Survey {
	five := decimal.NewFromInt(5)
	return &entity.Survey{
		CompanyID: companyID, CreatorID: 1, Title: "Clima laboral", Status: entity.SurveyDraft,
		CreatedAt: time.Now().UTC(),
		Questions: []entity.Question{
			{TypeID: entity.TypeShortText, Text: "Nombre del área", Order: 1, Required: true},
			{TypeID: entity.TypeScale, Text: "Satisfacción", Order: 2, Options: []entity.AnswerOption{
				{Text: "Baja", Order: 1},
				{Text: "Alta", Value: &five, Order: 2},
			}},
		},
	}
}

func TestSurveyRepo_CreateYGet(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	s := scaleSurvey(1)
	require.NoError(t, repos.Surveys.Create(ctx, s))
	require.NotZero(t, s.ID)
	_, short := survey.LinkBuilder{}.Build(s.ID)
	assert.Equal(t, short, s.ShortLink)
	assert.Equal(t, "https://encuestas.empresa.com/"+short, s.LongLink)

	got, err := repos.Surveys.GetByShortLink(ctx, s.ShortLink)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "Nombre del área", got.Questions[0].Text)
	assert.True(t, got.Questions[0].Required)
	require.Len(t, got.Questions[1].Options, 2)
	assert.Nil(t, got.Questions[1].Options[0].Value)
	assert.True(t, got.Questions[1].Options[1].Value.Equal(decimal.NewFromInt(5)))

	list, err := repos.Surveys.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Questions)
}

func TestSurveyRepo_UpdateSincronizaPreguntas(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	s := scaleSurvey(1)
	require.NoError(t, repos.Surveys.Create(ctx, s))
	keptID := s.Questions[1].ID
	keptOption := s.Questions[1].Options[1].ID

	s.Title = "Clima 2025"
	s.Status = entity.SurveyPublished
	s.Questions = []entity.Question{
		{ID: keptID, TypeID: entity.TypeScale, Text: "Satisfacción general", Order: 1, Options: []entity.AnswerOption{
			{ID: keptOption, Text: "Alta", Order: 1},
		}},
		{TypeID: entity.TypeDate, Text: "Fecha de ingreso", Order: 2},
	}
	require.NoError(t, repos.Surveys.Update(ctx, s))

	got, err := repos.Surveys.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clima 2025", got.Title)
	assert.Equal(t, entity.SurveyPublished, got.Status)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, keptID, got.Questions[0].ID)
	require.Len(t, got.Questions[0].Options, 1)
	assert.Equal(t, keptOption, got.Questions[0].Options[0].ID)
	assert.Nil(t, got.Questions[0].Options[0].Value)
	assert.Equal(t, "Fecha de ingreso", got.Questions[1].Text)

	missing := &entity.Survey{ID: 999, Title: "x", Status: entity.SurveyDraft}
	assert.ErrorIs(t, repos.Surveys.Update(ctx, missing), domain.ErrNotFound)
}

func TestResponseRepo(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	s := scaleSurvey(1)
	require.NoError(t, repos.Surveys.Create(ctx, s))

	txt := "Ventas"
	opt := s.Questions[1].Options[1].ID
	r := &entity.SurveyResponse{
		SurveyID: s.ID, Token: "tok-1", SubmittedAt: time.Now().UTC(),
		Answers: []entity.Answer{
			{QuestionID: s.Questions[0].ID, Text: &txt},
			{QuestionID: s.Questions[1].ID, OptionID: &opt},
		},
	}
	require.NoError(t, repos.Responses.Create(ctx, r))
	assert.NotZero(t, r.ID)

	list, err := repos.Responses.ListBySurvey(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Answers, 2)
	assert.Equal(t, "Ventas", *list[0].Answers[0].Text)
	assert.Equal(t, opt, *list[0].Answers[1].OptionID)

	counts, err := repos.Responses.CountBySurvey(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[s.ID])
}

func TestQuestionTypeRepo_List(t *testing.T) {
	types, err := newRepos(t).QuestionTypes.List(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 6)
	assert.Equal(t, "Texto Corto", types[0].Name)
	assert.Equal(t, "Fecha", types[5].Name)
}
