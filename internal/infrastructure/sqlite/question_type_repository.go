package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"gorm.io/gorm"
)

var _ repository.QuestionTypeRepository = (*QuestionTypeRepo)(nil)

// QuestionTypeRepo tabla tipopregunta.
type QuestionTypeRepo struct {
	db *gorm.DB
}

// NewQuestionTypeRepository construye el adaptador.
func NewQuestionTypeRepository(db *gorm.DB) *QuestionTypeRepo {
	return &QuestionTypeRepo{db: db}
}

// List tipos ordenados por ID.
func (r *QuestionTypeRepo) List(ctx context.Context) ([]entity.QuestionType, error) {
	var rows []questionTypeModel
	if err := r.db.WithContext(ctx).Order("tipopreguntaid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list question types: %w", err)
	}
	out := make([]entity.QuestionType, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.QuestionType{ID: m.TipoPreguntaID, Name: m.NombreTipo})
	}
	return out, nil
}
