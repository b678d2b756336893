package usecase

import (
	"context"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
)

// QuestionTypeUseCase lectura de la tabla de tipos de pregunta.
type QuestionTypeUseCase struct {
	repo repository.QuestionTypeRepository
}

// NewQuestionTypeUseCase construye el caso de uso.
func NewQuestionTypeUseCase(repo repository.QuestionTypeRepository) *QuestionTypeUseCase {
	return &QuestionTypeUseCase{repo: repo}
}

// List tipos ordenados por ID, indicando cuáles usan opciones.
func (uc *QuestionTypeUseCase) List(ctx context.Context) ([]dto.QuestionTypeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuestionTypeResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.QuestionTypeResponse{
			TipoPreguntaID: t.ID,
			NombreTipo:     t.Name,
			UsaOpciones:    entity.TypeNeedsOptions(t.ID),
		})
	}
	return out, nil
}
