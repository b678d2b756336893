package results

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/policy"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
	"github.com/jhoicas/Encuestas-api/internal/infrastructure/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPDF struct{ got *dto.SurveyResultsResponse }

func (s *stubPDF) GenerateResultsPDF(r *dto.SurveyResultsResponse) ([]byte, error) {
	s.got = r
	return []byte("%PDF"), nil
}

type stubCSV struct{ rows int }

func (s *stubCSV) ExportResponsesCSV(_ *entity.Survey, responses []*entity.SurveyResponse) ([]byte, error) {
	s.rows = len(responses)
	if s.rows == 0 {
		return nil, errors.New("sin filas")
	}
	return []byte("a,b\n"), nil
}

func TestUseCase_SummaryYExport(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	repos := sqlite.NewRepositories(db, survey.LinkBuilder{BaseURL: "https://x"})

	company := &entity.Company{Name: "TechCorp Solutions", TaxID: "1", RegisteredAt: time.Now().UTC()}
	require.NoError(t, repos.Companies.Create(ctx, company))
	s := &entity.Survey{
		CompanyID: company.ID, Title: "Clima", Status: entity.SurveyPublished, CreatedAt: time.Now().UTC(),
		Questions: []entity.Question{{TypeID: entity.TypeMultiple, Order: 1, Text: "¿Sí?", Options: []entity.AnswerOption{{Text: "Sí", Order: 1}}}},
	}
	require.NoError(t, repos.Surveys.Create(ctx, s))
	opt := s.Questions[0].Options[0].ID
	require.NoError(t, repos.Responses.Create(ctx, &entity.SurveyResponse{
		SurveyID: s.ID, Token: "t1", SubmittedAt: time.Now().UTC(),
		Answers: []entity.Answer{{QuestionID: s.Questions[0].ID, OptionID: &opt}},
	}))

	pdf, csv := &stubPDF{}, &stubCSV{}
	uc := NewUseCase(repos.Surveys, repos.Responses, repos.Companies, pdf, csv)
	analista := policy.Principal{UserID: 9, CompanyID: company.ID, Role: entity.RoleAnalyst}

	sum, err := uc.Summary(ctx, analista, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.TotalRespuestas)
	assert.Equal(t, "TechCorp Solutions", sum.EmpresaNombre)
	assert.Equal(t, 1, sum.Preguntas[0].Opciones[0].Cantidad)

	out, err := uc.Export(ctx, analista, s.ID, "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "resultados-"+s.ShortLink+".pdf", out.Filename)
	require.NotNil(t, pdf.got)

	out, err = uc.Export(ctx, analista, s.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, csv.rows)
	assert.Contains(t, out.ContentType, "text/csv")

	_, err = uc.Export(ctx, analista, s.ID, "xlsx")
	assert.ErrorIs(t, err, domain.ErrValidation)

	outsider := policy.Principal{UserID: 10, CompanyID: company.ID + 1, Role: entity.RoleCreator}
	_, err = uc.Summary(ctx, outsider, s.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Summary(ctx, analista, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
