package survey

import (
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func typePtr(t int64) *int64 { return &t }
func boolPtr(b bool) *bool { return &b }

func orders(qs []entity.Question) []int {
	out := make([]int, len(qs))
	for i, q := range qs {
		out[i] = q.Order
	}
	return out
}

func TestBuilder_AddQuestion_Defaults(t *testing.T) {
	b := NewBuilder()
	i := b.AddQuestion()
	j := b.AddQuestion()

	assert.Equal(t, 0, i)
	assert.Equal(t, 1, j)
	assert.Equal(t, []int{1, 2}, orders(b.Questions))
	assert.Equal(t, entity.TypeShortText, b.Questions[0].TypeID)
	assert.False(t, b.Questions[0].Required)
	assert.Equal(t, entity.SurveyDraft, b.Status)
}

func TestBuilder_DeleteQuestion_RenumeraContiguo(t *testing.T) {
	b := NewBuilder()
	for _, txt := range []string{"a", "b", "c", "d"} {
		i := b.AddQuestion()
		require.NoError(t, b.UpdateQuestion(i, QuestionPatch{Text: strPtr(txt)}))
	}

	require.NoError(t, b.DeleteQuestion(1))

	assert.Equal(t, []int{1, 2, 3}, orders(b.Questions))
	assert.Equal(t, "a", b.Questions[0].Text)
	assert.Equal(t, "c", b.Questions[1].Text)
	assert.Equal(t, "d", b.Questions[2].Text)

	assert.ErrorIs(t, b.DeleteQuestion(5), domain.ErrValidation)
}

func TestBuilder_Options(t *testing.T) {
	b := NewBuilder()
	qi := b.AddQuestion()
	require.NoError(t, b.UpdateQuestion(qi, QuestionPatch{TypeID: typePtr(entity.TypeMultiple), Required: boolPtr(true)}))

	for _, txt := range []string{"Sí", "No", "Tal vez"} {
		oi, err := b.AddOption(qi)
		require.NoError(t, err)
		v := decimal.NewFromInt(int64(oi + 1))
		require.NoError(t, b.UpdateOption(qi, oi, OptionPatch{Text: strPtr(txt), Value: &v}))
	}
	require.NoError(t, b.DeleteOption(qi, 0))

	opts := b.Questions[qi].Options
	require.Len(t, opts, 2)
	assert.Equal(t, "No", opts[0].Text)
	assert.Equal(t, 1, opts[0].Order)
	assert.Equal(t, 2, opts[1].Order)
	assert.True(t, opts[1].Value.Equal(decimal.NewFromInt(3)))

	_, err := b.AddOption(9)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, b.UpdateOption(qi, 7, OptionPatch{}), domain.ErrValidation)
}

func TestBuilder_UpdateQuestion_TipoInvalido(t *testing.T) {
	b := NewBuilder()
	qi := b.AddQuestion()
	err := b.UpdateQuestion(qi, QuestionPatch{TypeID: typePtr(9)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, entity.TypeShortText, b.Questions[qi].TypeID)
}

func TestNeedsOptions(t *testing.T) {
	for id := int64(1); id <= 6; id++ {
		want := id == 3 || id == 4 || id == 5
		assert.Equal(t, want, NeedsOptions(id), "tipo %d", id)
	}
}

func TestBuilder_Normalize_DescartaOpciones(t *testing.T) {
	b := NewBuilder()
	qi := b.AddQuestion()
	_, _ = b.AddOption(qi)
	_, _ = b.AddOption(qi)
	b.Questions[qi].Order = 7

	b.Normalize()

	assert.Nil(t, b.Questions[qi].Options, "texto corto no conserva opciones")
	assert.Equal(t, 1, b.Questions[qi].Order)
}

func TestBuilder_Save_TituloObligatorio(t *testing.T) {
	b := NewBuilder()
	b.Title = "   "

	s, err := b.Save()
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, domain.ErrTitleRequired))

	_, err = b.Publish()
	assert.ErrorIs(t, err, domain.ErrTitleRequired)
}

func TestBuilder_SaveYPublish(t *testing.T) {
	b := NewBuilder()
	b.Title = "  Clima laboral "
	qi := b.AddQuestion()
	require.NoError(t, b.UpdateQuestion(qi, QuestionPatch{Text: strPtr("¿Cómo te sientes?"), TypeID: typePtr(entity.TypeScale)}))
	_, _ = b.AddOption(qi)

	saved, err := b.Save()
	require.NoError(t, err)
	assert.Equal(t, "Clima laboral", saved.Title)
	assert.Equal(t, entity.SurveyDraft, saved.Status)
	require.Len(t, saved.Questions, 1)
	assert.Len(t, saved.Questions[0].Options, 1)

	published, err := b.Publish()
	require.NoError(t, err)
	assert.Equal(t, entity.SurveyPublished, published.Status)
	assert.Equal(t, entity.SurveyDraft, b.Status, "Publish no modifica el estado del borrador")
}

func TestBuilder_Save_ConservaEstadoCargado(t *testing.T) {
	b := FromSurvey(&entity.Survey{Title: "X", Status: entity.SurveyClosed})
	s, err := b.Save()
	require.NoError(t, err)
	assert.Equal(t, entity.SurveyClosed, s.Status)
}

func TestBuilder_Save_VigenciaInvertida(t *testing.T) {
	from := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	b := NewBuilder()
	b.Title = "X"
	b.ValidFrom, b.ValidTo = &from, &to

	_, err := b.Save()
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFromSurvey_CopiaProfunda(t *testing.T) {
	src := &entity.Survey{
		Title: "X",
		Questions: []entity.Question{
			{ID: 1, TypeID: entity.TypeCheckbox, Order: 1, Options: []entity.AnswerOption{{ID: 5, Text: "a", Order: 1}}},
		},
	}
	b := FromSurvey(src)
	require.NoError(t, b.UpdateOption(0, 0, OptionPatch{Text: strPtr("b")}))

	assert.Equal(t, "a", src.Questions[0].Options[0].Text)
	assert.Equal(t, entity.SurveyDraft, b.Status)
}

func TestLinkBuilder_Build(t *testing.T) {
	long, short := LinkBuilder{BaseURL: "https://encuestas.empresa.com/"}.Build(42)
	assert.Equal(t, "enc-42", short)
	assert.Equal(t, "https://encuestas.empresa.com/enc-42", long)
}
