package repository

import (
	"context"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
)

// ResponseRepository persiste respuestas de encuestas públicas.
type ResponseRepository interface {
	// Create guarda la respuesta y sus Answers de forma atómica.
	Create(ctx context.Context, response *entity.SurveyResponse) error
	// ListBySurvey devuelve las respuestas con sus Answers, en orden de envío.
	ListBySurvey(ctx context.Context, surveyID int64) ([]*entity.SurveyResponse, error)
	// CountBySurvey número de respuestas por encuesta.
	CountBySurvey(ctx context.Context) (map[int64]int, error)
}

// Repositories agrupa los puertos de un backend concreto.
type Repositories struct {
	Companies     CompanyRepository
	Users         UserRepository
	Surveys       SurveyRepository
	QuestionTypes QuestionTypeRepository
	Responses     ResponseRepository
}
