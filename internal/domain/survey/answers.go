package survey

import (
	"strings"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
)

// DateLayout formato de las respuestas de tipo Fecha.
const DateLayout = "2006-01-02"

// AnswerValue respuesta enviada para una pregunta.
type AnswerValue struct {
	OptionIDs []int64
	Text      string
}

func (v AnswerValue) empty() bool {
	return len(v.OptionIDs) == 0 && strings.TrimSpace(v.Text) == ""
}

// ValidateAnswers comprueba que toda pregunta obligatoria tenga respuesta y que las
// opciones pertenezcan a su pregunta. Devuelve las Answer a persistir en orden de pregunta.
func ValidateAnswers(questions []entity.Question, answers map[int64]AnswerValue) ([]entity.Answer, error) {
	byID := make(map[int64]entity.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	for qid := range answers {
		if _, ok := byID[qid]; !ok {
			return nil, domain.Validationf("la pregunta %d no pertenece a la encuesta", qid)
		}
	}

	for _, q := range questions {
		if q.Required && answers[q.ID].empty() {
			return nil, domain.ErrRequiredAnswers
		}
	}

	var out []entity.Answer
	for _, q := range questions {
		v, ok := answers[q.ID]
		if !ok || v.empty() {
			continue
		}
		if NeedsOptions(q.TypeID) {
			opts, err := checkOptions(q, v.OptionIDs)
			if err != nil {
				return nil, err
			}
			for _, id := range opts {
				id := id
				out = append(out, entity.Answer{QuestionID: q.ID, OptionID: &id})
			}
			continue
		}
		text := strings.TrimSpace(v.Text)
		if text == "" {
			if q.Required {
				return nil, domain.ErrRequiredAnswers
			}
			continue
		}
		if q.TypeID == entity.TypeDate {
			if _, err := time.Parse(DateLayout, text); err != nil {
				return nil, domain.Validationf("fecha inválida en la pregunta %d", q.Order)
			}
		}
		out = append(out, entity.Answer{QuestionID: q.ID, Text: &text})
	}
	return out, nil
}

func checkOptions(q entity.Question, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		if q.Required {
			return nil, domain.ErrRequiredAnswers
		}
		return nil, nil
	}
	if q.TypeID != entity.TypeCheckbox && len(ids) > 1 {
		return nil, domain.Validationf("la pregunta %d admite una sola opción", q.Order)
	}
	valid := make(map[int64]bool, len(q.Options))
	for _, o := range q.Options {
		valid[o.ID] = true
	}
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !valid[id] {
			return nil, domain.Validationf("opción %d inválida para la pregunta %d", id, q.Order)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}
