package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseUseCase_BorradorNoEsPublico(t *testing.T) {
	f := newFixture(t)
	created, err := newSurveyUC(f).Create(context.Background(), f.creador, climaRequest(), false)
	require.NoError(t, err)

	uc := NewResponseUseCase(f.repos.Surveys, f.repos.Responses, f.repos.Companies)
	_, err = uc.GetPublic(context.Background(), created.EnlaceCorto)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Submit(context.Background(), created.EnlaceCorto, dto.SubmitResponseRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetPublic(context.Background(), "enc-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResponseUseCase_Submit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := newSurveyUC(f).Create(ctx, f.creador, climaRequest(), true)
	require.NoError(t, err)
	uc := NewResponseUseCase(f.repos.Surveys, f.repos.Responses, f.repos.Companies)

	public, err := uc.GetPublic(ctx, created.EnlaceCorto)
	require.NoError(t, err)
	assert.Equal(t, "TechCorp Solutions", public.EmpresaNombre)

	_, err = uc.Submit(ctx, created.EnlaceCorto, dto.SubmitResponseRequest{
		Respuestas: []dto.AnswerRequest{{PreguntaID: public.Preguntas[1].PreguntaID, OpcionIDs: []int64{public.Preguntas[1].Opciones[0].OpcionID}}},
	})
	assert.ErrorIs(t, err, domain.ErrRequiredAnswers)

	out, err := uc.Submit(ctx, created.EnlaceCorto, dto.SubmitResponseRequest{
		IdentificadorUsuario: "visitante@correo.com",
		Respuestas: []dto.AnswerRequest{
			{PreguntaID: public.Preguntas[0].PreguntaID, Texto: "Soporte"},
			{PreguntaID: public.Preguntas[1].PreguntaID, OpcionIDs: []int64{public.Preguntas[1].Opciones[1].OpcionID}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, ThanksMessage, out.Mensaje)
	assert.NotEmpty(t, out.Token)

	counts, err := f.repos.Responses.CountBySurvey(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[created.EncuestaID], "el envío rechazado no se guarda")
}

func TestResponseUseCase_FueraDeVigencia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := climaRequest()
	in.FechaInicioVigencia = "2020-01-01"
	in.FechaFinVigencia = "2020-01-31"
	created, err := newSurveyUC(f).Create(ctx, f.creador, in, true)
	require.NoError(t, err)

	uc := NewResponseUseCase(f.repos.Surveys, f.repos.Responses, f.repos.Companies)
	uc.now = func() time.Time { return time.Date(2020, 1, 31, 23, 0, 0, 0, time.UTC) }
	_, err = uc.Submit(ctx, created.EnlaceCorto, dto.SubmitResponseRequest{
		Respuestas: []dto.AnswerRequest{{PreguntaID: created.Preguntas[0].PreguntaID, Texto: "ok"}},
	})
	require.NoError(t, err, "el último día de vigencia está incluido")

	uc.now = func() time.Time { return time.Date(2020, 2, 1, 0, 0, 1, 0, time.UTC) }
	_, err = uc.Submit(ctx, created.EnlaceCorto, dto.SubmitResponseRequest{})
	assert.ErrorIs(t, err, domain.ErrSurveyClosed)
}
