package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Survey. El constructor nunca asigna SurveyClosed.
const (
	SurveyDraft     = "Borrador"
	SurveyPublished = "Publicada"
	SurveyClosed    = "Cerrada"
)

// Survey es una encuesta con sus preguntas anidadas.
type Survey struct {
	ID          int64
	CompanyID   int64
	CompanyName string // solo lectura
	CreatorID   int64
	Title       string
	Description string
	CreatedAt   time.Time
	ValidFrom   *time.Time
	ValidTo     *time.Time
	Status      string
	LongLink    string
	ShortLink   string
	Questions   []Question
}

// AcceptsResponses indica si la encuesta está publicada y dentro de su vigencia en now.
// ValidTo cubre el día completo.
func (s *Survey) AcceptsResponses(now time.Time) bool {
	if s.Status != SurveyPublished {
		return false
	}
	if s.ValidFrom != nil && now.Before(*s.ValidFrom) {
		return false
	}
	if s.ValidTo != nil && !now.Before(s.ValidTo.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// Question pregunta de una encuesta. Order es 1..N contiguo dentro de la encuesta.
type Question struct {
	ID       int64
	SurveyID int64
	TypeID   int64
	Text     string
	Order    int
	Required bool
	Options  []AnswerOption
}

// AnswerOption opción de respuesta de una pregunta de selección o escala.
type AnswerOption struct {
	ID         int64
	QuestionID int64
	Text       string
	Value      *decimal.Decimal // valor numérico opcional (escalas)
	Order      int
}
