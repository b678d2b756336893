package redisstore

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

var _ repository.ResponseRepository = (*ResponseRepo)(nil)

// ResponseRepo respuestas como documentos encuesta_respondida:<id>, indexadas por encuesta.
type ResponseRepo struct {
	rdb *redis.Client
}

// NewResponseRepository construye el adaptador.
func NewResponseRepository(rdb *redis.Client) *ResponseRepo {
	return &ResponseRepo{rdb: rdb}
}

// Create asigna IDs y escribe documento e índice en un MULTI/EXEC.
func (r *ResponseRepo) Create(ctx context.Context, resp *entity.SurveyResponse) error {
	ok, err := exists(ctx, r.rdb, surveyKey(resp.SurveyID))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	id, err := nextID(ctx, r.rdb, "encuesta_respondida")
	if err != nil {
		return err
	}
	first, err := nextIDs(ctx, r.rdb, "respuestausuario", len(resp.Answers))
	if err != nil {
		return err
	}

	out := *resp
	out.ID = id
	out.Answers = append([]entity.Answer(nil), resp.Answers...)
	for i := range out.Answers {
		out.Answers[i].ID = first + int64(i)
		out.Answers[i].ResponseID = id
	}
	data, err := encodeResponse(&out)
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, responseKey(id), data, 0)
		pipe.SAdd(ctx, surveyResponsesKey(resp.SurveyID), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: guardar respuesta: %w", err)
	}
	*resp = out
	return nil
}

// ListBySurvey respuestas de la encuesta en orden de envío.
func (r *ResponseRepo) ListBySurvey(ctx context.Context, surveyID int64) ([]*entity.SurveyResponse, error) {
	docs, err := loadAll(ctx, r.rdb, surveyResponsesKey(surveyID), responseKey)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.SurveyResponse, 0, len(docs))
	for _, d := range docs {
		resp, err := decodeResponse(d)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.Before(out[j].SubmittedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CountBySurvey número de respuestas por encuesta (solo encuestas con alguna respuesta).
func (r *ResponseRepo) CountBySurvey(ctx context.Context) (map[int64]int, error) {
	members, err := r.rdb.SMembers(ctx, setSurveys).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: smembers %s: %w", setSurveys, err)
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redis: id inválido %q en %s", m, setSurveys)
		}
		ids = append(ids, id)
	}

	cmds := make([]*redis.IntCmd, len(ids))
	_, err = r.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.SCard(ctx, surveyResponsesKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis: contar respuestas: %w", err)
	}
	out := map[int64]int{}
	for i, id := range ids {
		if n := cmds[i].Val(); n > 0 {
			out[id] = int(n)
		}
	}
	return out, nil
}
