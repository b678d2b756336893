package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
)

var _ repository.QuestionTypeRepository = (*QuestionTypeRepo)(nil)

// QuestionTypeRepo tabla tipopregunta.
type QuestionTypeRepo struct {
	db Querier
}

// NewQuestionTypeRepository construye el adaptador.
func NewQuestionTypeRepository(db Querier) *QuestionTypeRepo {
	return &QuestionTypeRepo{db: db}
}

// List tipos ordenados por ID.
func (r *QuestionTypeRepo) List(ctx context.Context) ([]entity.QuestionType, error) {
	rows, err := r.db.Query(ctx, `SELECT tipopreguntaid, nombretipo FROM tipopregunta ORDER BY tipopreguntaid`)
	if err != nil {
		return nil, fmt.Errorf("list question types: %w", err)
	}
	defer rows.Close()

	out := []entity.QuestionType{}
	for rows.Next() {
		var t entity.QuestionType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan question type: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
