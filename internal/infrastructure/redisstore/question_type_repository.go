package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

var _ repository.QuestionTypeRepository = (*QuestionTypeRepo)(nil)

// QuestionTypeRepo tabla de tipos guardada como lista JSON en tipos_pregunta.
type QuestionTypeRepo struct {
	rdb *redis.Client
}

// NewQuestionTypeRepository construye el adaptador.
func NewQuestionTypeRepository(rdb *redis.Client) *QuestionTypeRepo {
	return &QuestionTypeRepo{rdb: rdb}
}

type questionTypeDoc struct {
	TipoPreguntaID int64  `json:"tipoPreguntaID"`
	NombreTipo     string `json:"nombreTipo"`
}

// List tipos ordenados por ID. La primera lectura carga los tipos por defecto.
func (r *QuestionTypeRepo) List(ctx context.Context) ([]entity.QuestionType, error) {
	data, err := getDoc(ctx, r.rdb, keyQuestionTypes)
	if err != nil {
		return nil, err
	}
	if data == nil {
		if err := SeedQuestionTypes(ctx, r.rdb); err != nil {
			return nil, err
		}
		return entity.DefaultQuestionTypes(), nil
	}

	var docs []questionTypeDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("redis: documento %s: %w", keyQuestionTypes, err)
	}
	out := make([]entity.QuestionType, 0, len(docs))
	for _, d := range docs {
		if d.TipoPreguntaID == 0 || d.NombreTipo == "" {
			return nil, missing(keyQuestionTypes, "tipoPreguntaID/nombreTipo")
		}
		out = append(out, entity.QuestionType{ID: d.TipoPreguntaID, Name: d.NombreTipo})
	}
	return out, nil
}

// SeedQuestionTypes escribe los tipos por defecto si la clave no existe.
func SeedQuestionTypes(ctx context.Context, rdb redis.Cmdable) error {
	types := entity.DefaultQuestionTypes()
	docs := make([]questionTypeDoc, 0, len(types))
	for _, t := range types {
		docs = append(docs, questionTypeDoc{TipoPreguntaID: t.ID, NombreTipo: t.Name})
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	if err := rdb.SetNX(ctx, keyQuestionTypes, data, 0).Err(); err != nil {
		return fmt.Errorf("redis: cargar tipos de pregunta: %w", err)
	}
	return nil
}
