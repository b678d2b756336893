package repository

import (
	"context"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
)

// SurveyRepository persiste encuestas con sus preguntas y opciones.
// Create y Update escriben encuesta, preguntas y opciones de forma atómica.
type SurveyRepository interface {
	// List devuelve las encuestas sin preguntas, más recientes primero.
	List(ctx context.Context) ([]*entity.Survey, error)
	// GetByID devuelve la encuesta con preguntas y opciones ordenadas por Order.
	GetByID(ctx context.Context, id int64) (*entity.Survey, error)
	GetByShortLink(ctx context.Context, shortLink string) (*entity.Survey, error)
	// Create asigna IDs, fecha de creación y enlaces.
	Create(ctx context.Context, survey *entity.Survey) error
	// Update reemplaza campos y el conjunto de preguntas: las que traen ID se actualizan,
	// las de ID cero se insertan y las ausentes se eliminan junto con sus opciones.
	// Mismo criterio para las opciones de cada pregunta.
	Update(ctx context.Context, survey *entity.Survey) error
}

// QuestionTypeRepository lectura de la tabla de tipos de pregunta.
type QuestionTypeRepository interface {
	List(ctx context.Context) ([]entity.QuestionType, error)
}
