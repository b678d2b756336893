package entity

import "time"

// SurveyResponse una respuesta enviada a una encuesta pública.
type SurveyResponse struct {
	ID              int64
	SurveyID        int64
	Respondent      string // identificador opcional (email o nombre)
	Token           string // comprobante de envío
	SubmittedAt     time.Time
	Answers         []Answer
}

// Answer respuesta a una pregunta. Las casillas generan una Answer por opción elegida.
type Answer struct {
	ID         int64
	ResponseID int64
	QuestionID int64
	OptionID   *int64
	Text       *string
}
