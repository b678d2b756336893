package usecase

import (
	"context"
	"testing"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func climaRequest() dto.SurveyRequest {
	five := decimal.NewFromInt(5)
	return dto.SurveyRequest{
		Titulo:              "Encuesta de Satisfacción",
		Descripcion:         "Evaluación anual del área de atención",
		FechaInicioVigencia: "2020-01-01",
		Preguntas: []dto.QuestionRequest{
			{TipoPreguntaID: entity.TypeShortText, TextoPregunta: "¿Área?", EsObligatoria: true,
				Opciones: []dto.OptionRequest{{TextoOpcion: "se descarta"}}},
			{TipoPreguntaID: entity.TypeScale, TextoPregunta: "Satisfacción", Opciones: []dto.OptionRequest{
				{TextoOpcion: "1"}, {TextoOpcion: "5", Valor: &five},
			}},
		},
	}
}

func newSurveyUC(f *fixture) *SurveyUseCase {
	return NewSurveyUseCase(f.repos.Surveys, f.repos.Responses, f.repos.Companies)
}

func TestSurveyUseCase_CreateBorrador(t *testing.T) {
	f := newFixture(t)
	uc := newSurveyUC(f)

	out, err := uc.Create(context.Background(), f.creador, climaRequest(), false)
	require.NoError(t, err)

	assert.Equal(t, entity.SurveyDraft, out.Estado)
	assert.Equal(t, f.techCorp.ID, out.EmpresaID)
	assert.Equal(t, f.creador.UserID, out.UsuarioCreadorID)
	assert.Equal(t, "TechCorp Solutions", out.EmpresaNombre)
	assert.Equal(t, "2020-01-01", out.FechaInicioVigencia)
	assert.Regexp(t, `^enc-\d+$`, out.EnlaceCorto)
	assert.Equal(t, "https://encuestas.empresa.com/"+out.EnlaceCorto, out.EnlaceLargo)

	require.Len(t, out.Preguntas, 2)
	assert.Equal(t, 1, out.Preguntas[0].Orden)
	assert.Empty(t, out.Preguntas[0].Opciones, "texto corto sin opciones")
	require.Len(t, out.Preguntas[1].Opciones, 2)
	assert.Equal(t, 2, out.Preguntas[1].Opciones[1].Orden)
}

func TestSurveyUseCase_Create_TituloVacioNoEscribe(t *testing.T) {
	f := newFixture(t)
	uc := newSurveyUC(f)
	ctx := context.Background()

	in := climaRequest()
	in.Titulo = "   "
	_, err := uc.Create(ctx, f.creador, in, true)
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	list, err := f.repos.Surveys.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSurveyUseCase_Create_AnalistaNoConstruye(t *testing.T) {
	f := newFixture(t)
	_, err := newSurveyUC(f).Create(context.Background(), f.analista, climaRequest(), false)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSurveyUseCase_PublishYUpdateConservaEstado(t *testing.T) {
	f := newFixture(t)
	uc := newSurveyUC(f)
	ctx := context.Background()

	created, err := uc.Create(ctx, f.creador, climaRequest(), true)
	require.NoError(t, err)
	assert.Equal(t, entity.SurveyPublished, created.Estado)

	in := climaRequest()
	in.Titulo = "Satisfacción 2025"
	in.Preguntas[1].PreguntaID = created.Preguntas[1].PreguntaID
	in.Preguntas[1].Opciones[0].OpcionID = created.Preguntas[1].Opciones[0].OpcionID
	in.Preguntas[1].Opciones[1].OpcionID = created.Preguntas[1].Opciones[1].OpcionID
	updated, err := uc.Update(ctx, f.creador, created.EncuestaID, in, false)
	require.NoError(t, err)

	assert.Equal(t, entity.SurveyPublished, updated.Estado, "guardar conserva el estado")
	assert.Equal(t, created.EnlaceCorto, updated.EnlaceCorto)
	assert.Equal(t, created.Preguntas[1].PreguntaID, updated.Preguntas[1].PreguntaID)

	_, err = uc.Update(ctx, f.externo, created.EncuestaID, in, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSurveyUseCase_Update_NoEliminaPreguntasConRespuestas(t *testing.T) {
	f := newFixture(t)
	uc := newSurveyUC(f)
	responses := NewResponseUseCase(f.repos.Surveys, f.repos.Responses, f.repos.Companies)
	ctx := context.Background()

	created, err := uc.Create(ctx, f.creador, climaRequest(), true)
	require.NoError(t, err)
	_, err = responses.Submit(ctx, created.EnlaceCorto, dto.SubmitResponseRequest{
		Respuestas: []dto.AnswerRequest{{PreguntaID: created.Preguntas[0].PreguntaID, Texto: "Ventas"}},
	})
	require.NoError(t, err)

	in := climaRequest()
	in.Preguntas = in.Preguntas[:1]
	in.Preguntas[0].PreguntaID = created.Preguntas[0].PreguntaID
	_, err = uc.Update(ctx, f.creador, created.EncuestaID, in, false)
	assert.ErrorIs(t, err, domain.ErrSurveyHasResponses)
}

func TestSurveyUseCase_List_FiltrosYVisibilidad(t *testing.T) {
	f := newFixture(t)
	uc := newSurveyUC(f)
	ctx := context.Background()

	_, err := uc.Create(ctx, f.creador, climaRequest(), true)
	require.NoError(t, err)
	draft := climaRequest()
	draft.Titulo = "Capacitación interna"
	draft.Descripcion = ""
	_, err = uc.Create(ctx, f.creador, draft, false)
	require.NoError(t, err)
	other := climaRequest()
	other.Titulo = "Encuesta Innovatech"
	_, err = uc.Create(ctx, f.externo, other, false)
	require.NoError(t, err)

	all, err := uc.List(ctx, f.admin, dto.SurveyFilter{Estado: "Todas"})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	own, err := uc.List(ctx, f.analista, dto.SurveyFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, own.Total, "solo encuestas de su empresa")
	for _, s := range own.Items {
		assert.Equal(t, "TechCorp Solutions", s.EmpresaNombre)
		assert.Nil(t, s.Preguntas)
	}

	published, err := uc.List(ctx, f.analista, dto.SurveyFilter{Estado: entity.SurveyPublished})
	require.NoError(t, err)
	require.Equal(t, 1, published.Total)

	search, err := uc.List(ctx, f.analista, dto.SurveyFilter{Q: "SATISFACCION"})
	require.NoError(t, err)
	require.Equal(t, 1, search.Total, "búsqueda sin acentos ni mayúsculas")
	assert.Equal(t, "Encuesta de Satisfacción", search.Items[0].Titulo)

	byDescription, err := uc.List(ctx, f.analista, dto.SurveyFilter{Q: "atención"})
	require.NoError(t, err)
	assert.Equal(t, 1, byDescription.Total)
}

func TestSurveyUseCase_Get(t *testing.T) {
	f := newFixture(t)
	uc := newSurveyUC(f)
	ctx := context.Background()

	created, err := uc.Create(ctx, f.creador, climaRequest(), false)
	require.NoError(t, err)

	got, err := uc.Get(ctx, f.analista, created.EncuestaID)
	require.NoError(t, err)
	assert.Len(t, got.Preguntas, 2)

	_, err = uc.Get(ctx, f.externo, created.EncuestaID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Get(ctx, f.admin, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuestionTypeUseCase_List(t *testing.T) {
	f := newFixture(t)
	out, err := NewQuestionTypeUseCase(f.repos.QuestionTypes).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 6)
	for _, qt := range out {
		assert.Equal(t, qt.TipoPreguntaID >= 3 && qt.TipoPreguntaID <= 5, qt.UsaOpciones, qt.NombreTipo)
	}
}
