package redisstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
	"github.com/redis/go-redis/v9"
)

var _ repository.SurveyRepository = (*SurveyRepo)(nil)

// SurveyRepo encuestas como un único documento anidado (preguntas y opciones incluidas).
type SurveyRepo struct {
	rdb   *redis.Client
	links survey.LinkBuilder
}

// NewSurveyRepository construye el adaptador.
func NewSurveyRepository(rdb *redis.Client, links survey.LinkBuilder) *SurveyRepo {
	return &SurveyRepo{rdb: rdb, links: links}
}

// List encuestas sin preguntas, más recientes primero.
func (r *SurveyRepo) List(ctx context.Context) ([]*entity.Survey, error) {
	docs, err := loadAll(ctx, r.rdb, setSurveys, surveyKey)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Survey, 0, len(docs))
	for _, d := range docs {
		s, err := decodeSurvey(d)
		if err != nil {
			return nil, err
		}
		s.Questions = nil
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// GetByID encuesta con preguntas y opciones ordenadas.
func (r *SurveyRepo) GetByID(ctx context.Context, id int64) (*entity.Survey, error) {
	return getSurvey(ctx, r.rdb, id)
}

func getSurvey(ctx context.Context, rdb redis.Cmdable, id int64) (*entity.Survey, error) {
	data, err := getDoc(ctx, rdb, surveyKey(id))
	if err != nil || data == nil {
		return nil, err
	}
	s, err := decodeSurvey(data)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(s.Questions, func(i, j int) bool { return s.Questions[i].Order < s.Questions[j].Order })
	for i := range s.Questions {
		opts := s.Questions[i].Options
		sort.SliceStable(opts, func(a, b int) bool { return opts[a].Order < opts[b].Order })
	}
	return s, nil
}

// GetByShortLink encuesta por el índice encuesta:enlace:<corto>.
func (r *SurveyRepo) GetByShortLink(ctx context.Context, shortLink string) (*entity.Survey, error) {
	id, err := getID(ctx, r.rdb, shortLinkKey(shortLink))
	if err != nil || id == 0 {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Create asigna IDs (encuesta, preguntas, opciones) y enlaces, y escribe el documento
// junto con los índices en un MULTI/EXEC condicionado (WATCH) a que la empresa siga existiendo.
func (r *SurveyRepo) Create(ctx context.Context, s *entity.Survey) error {
	if err := checkCompany(ctx, r.rdb, s.CompanyID); err != nil {
		return err
	}
	id, err := nextID(ctx, r.rdb, "encuesta")
	if err != nil {
		return err
	}

	out := *s
	out.ID = id
	out.LongLink, out.ShortLink = r.links.Build(id)
	out.Questions = cloneQuestions(s.Questions)
	for i := range out.Questions {
		out.Questions[i].ID = 0
		for j := range out.Questions[i].Options {
			out.Questions[i].Options[j].ID = 0
		}
	}
	if err := assignIDs(ctx, r.rdb, &out); err != nil {
		return err
	}
	data, err := encodeSurvey(&out)
	if err != nil {
		return err
	}
	err = r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		if err := checkCompany(ctx, tx, out.CompanyID); err != nil {
			return err
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, surveyKey(id), data, 0)
			pipe.SAdd(ctx, setSurveys, id)
			pipe.SAdd(ctx, companySurveysKey(out.CompanyID), id)
			pipe.Set(ctx, shortLinkKey(out.ShortLink), id, 0)
			return nil
		})
		return err
	}, companyKey(out.CompanyID))
	if err != nil {
		return txErr(err)
	}
	*s = out
	return nil
}

// Update reemplaza campos y preguntas. Empresa, creador, fecha de creación y enlaces se conservan.
// Quitar preguntas u opciones de una encuesta con respuestas devuelve ErrSurveyHasResponses.
func (r *SurveyRepo) Update(ctx context.Context, s *entity.Survey) error {
	var out entity.Survey
	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := getSurvey(ctx, tx, s.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		out = *s
		out.CompanyID, out.CreatorID, out.CreatedAt = current.CompanyID, current.CreatorID, current.CreatedAt
		out.LongLink, out.ShortLink = current.LongLink, current.ShortLink
		out.Questions = cloneQuestions(s.Questions)

		if removesAny(current.Questions, out.Questions) {
			n, err := tx.SCard(ctx, surveyResponsesKey(s.ID)).Result()
			if err != nil {
				return fmt.Errorf("redis: scard: %w", err)
			}
			if n > 0 {
				return domain.ErrSurveyHasResponses
			}
		}
		if err := assignIDs(ctx, tx, &out); err != nil {
			return err
		}
		data, err := encodeSurvey(&out)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, surveyKey(s.ID), data, 0)
			return nil
		})
		return err
	}, surveyKey(s.ID), surveyResponsesKey(s.ID))
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// assignIDs numera con los contadores las preguntas y opciones que llegan con ID cero.
func assignIDs(ctx context.Context, rdb redis.Cmdable, s *entity.Survey) error {
	var newQuestions, newOptions int
	for _, q := range s.Questions {
		if q.ID == 0 {
			newQuestions++
		}
		for _, o := range q.Options {
			if o.ID == 0 {
				newOptions++
			}
		}
	}
	nextQ, err := nextIDs(ctx, rdb, "pregunta", newQuestions)
	if err != nil {
		return err
	}
	nextO, err := nextIDs(ctx, rdb, "opcion", newOptions)
	if err != nil {
		return err
	}
	for i := range s.Questions {
		q := &s.Questions[i]
		if q.ID == 0 {
			q.ID = nextQ
			nextQ++
		}
		q.SurveyID = s.ID
		for j := range q.Options {
			o := &q.Options[j]
			if o.ID == 0 {
				o.ID = nextO
				nextO++
			}
			o.QuestionID = q.ID
		}
	}
	return nil
}

// removesAny informa si next deja fuera alguna pregunta u opción de current.
func removesAny(current, next []entity.Question) bool {
	kept := map[int64]map[int64]bool{}
	for _, q := range next {
		if q.ID == 0 {
			continue
		}
		opts := map[int64]bool{}
		for _, o := range q.Options {
			opts[o.ID] = true
		}
		kept[q.ID] = opts
	}
	for _, q := range current {
		opts, ok := kept[q.ID]
		if !ok {
			return true
		}
		for _, o := range q.Options {
			if !opts[o.ID] {
				return true
			}
		}
	}
	return false
}

func cloneQuestions(qs []entity.Question) []entity.Question {
	out := make([]entity.Question, len(qs))
	for i, q := range qs {
		q.Options = append([]entity.AnswerOption(nil), q.Options...)
		out[i] = q
	}
	return out
}
