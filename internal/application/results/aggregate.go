package results

import (
	"sort"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// maxTextAnswers respuestas abiertas incluidas por pregunta (las más recientes).
const maxTextAnswers = 50

var hundred = decimal.NewFromInt(100)

// Aggregate calcula los resultados de s a partir de sus respuestas.
func Aggregate(s *entity.Survey, responses []*entity.SurveyResponse) *dto.SurveyResultsResponse {
	out := &dto.SurveyResultsResponse{
		EncuestaID:       s.ID,
		Titulo:           s.Title,
		Estado:           s.Status,
		EmpresaNombre:    s.CompanyName,
		EnlaceLargo:      s.LongLink,
		TotalRespuestas:  len(responses),
		Preguntas:        make([]dto.QuestionResultDTO, 0, len(s.Questions)),
		RespuestasPorDia: daily(responses),
	}
	for _, q := range s.Questions {
		out.Preguntas = append(out.Preguntas, aggregateQuestion(q, responses))
	}
	return out
}

func aggregateQuestion(q entity.Question, responses []*entity.SurveyResponse) dto.QuestionResultDTO {
	res := dto.QuestionResultDTO{
		PreguntaID:     q.ID,
		TipoPreguntaID: q.TypeID,
		TextoPregunta:  q.Text,
		Orden:          q.Order,
	}

	optionCounts := make(map[int64]int, len(q.Options))
	for _, r := range responses {
		answered := false
		for _, a := range r.Answers {
			if a.QuestionID != q.ID {
				continue
			}
			switch {
			case a.OptionID != nil:
				optionCounts[*a.OptionID]++
				answered = true
			case a.Text != nil:
				res.Textos = append(res.Textos, dto.TextAnswerDTO{Texto: *a.Text, FechaRespuesta: r.SubmittedAt})
				answered = true
			}
		}
		if answered {
			res.TotalRespuestas++
		}
	}

	if entity.TypeNeedsOptions(q.TypeID) {
		res.Textos = nil
		res.Opciones = make([]dto.OptionResultDTO, 0, len(q.Options))
		for _, o := range q.Options {
			res.Opciones = append(res.Opciones, dto.OptionResultDTO{
				OpcionID:    o.ID,
				TextoOpcion: o.Text,
				Cantidad:    optionCounts[o.ID],
				Porcentaje:  percent(optionCounts[o.ID], res.TotalRespuestas),
			})
		}
		if q.TypeID == entity.TypeScale {
			res.Promedio = scaleAverage(q.Options, optionCounts)
		}
		return res
	}

	sort.SliceStable(res.Textos, func(i, j int) bool {
		return res.Textos[i].FechaRespuesta.After(res.Textos[j].FechaRespuesta)
	})
	if len(res.Textos) > maxTextAnswers {
		res.Textos = res.Textos[:maxTextAnswers]
	}
	return res
}

// scaleAverage promedio ponderado de los valores de la escala; sin Valor se usa el orden.
func scaleAverage(options []entity.AnswerOption, counts map[int64]int) *decimal.Decimal {
	sum := decimal.Zero
	n := 0
	for _, o := range options {
		c := counts[o.ID]
		if c == 0 {
			continue
		}
		v := decimal.NewFromInt(int64(o.Order))
		if o.Value != nil {
			v = *o.Value
		}
		sum = sum.Add(v.Mul(decimal.NewFromInt(int64(c))))
		n += c
	}
	if n == 0 {
		return nil
	}
	avg := sum.Div(decimal.NewFromInt(int64(n))).Round(2)
	return &avg
}

func percent(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(2)
}

func daily(responses []*entity.SurveyResponse) []dto.DailyCountDTO {
	counts := make(map[string]int)
	for _, r := range responses {
		counts[r.SubmittedAt.UTC().Format("2006-01-02")]++
	}
	out := make([]dto.DailyCountDTO, 0, len(counts))
	for day, n := range counts {
		out = append(out, dto.DailyCountDTO{Fecha: day, Cantidad: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha < out[j].Fecha })
	return out
}
