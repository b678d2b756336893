// Package postgres backend relacional sobre pgx.
package postgres

import (
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
)

// NewRepositories construye los repositorios sobre db (pool o transacción).
func NewRepositories(db Querier, links survey.LinkBuilder) repository.Repositories {
	return repository.Repositories{
		Companies:     NewCompanyRepository(db),
		Users:         NewUserRepository(db),
		Surveys:       NewSurveyRepository(db, links),
		QuestionTypes: NewQuestionTypeRepository(db),
		Responses:     NewResponseRepository(db),
	}
}
