package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
	"gorm.io/gorm"
)

var _ repository.SurveyRepository = (*SurveyRepo)(nil)

// SurveyRepo encuestas con preguntas y opciones sobre gorm.
type SurveyRepo struct {
	db    *gorm.DB
	links survey.LinkBuilder
}

// NewSurveyRepository construye el adaptador. links genera los enlaces al asignar el ID.
func NewSurveyRepository(db *gorm.DB, links survey.LinkBuilder) *SurveyRepo {
	return &SurveyRepo{db: db, links: links}
}

// List encuestas sin preguntas, más recientes primero.
func (r *SurveyRepo) List(ctx context.Context) ([]*entity.Survey, error) {
	var rows []surveyModel
	if err := r.db.WithContext(ctx).Order("fechacreacion DESC, encuestaid DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	out := make([]*entity.Survey, 0, len(rows))
	for i := range rows {
		out = append(out, toSurvey(&rows[i]))
	}
	return out, nil
}

// GetByID encuesta con preguntas y opciones.
func (r *SurveyRepo) GetByID(ctx context.Context, id int64) (*entity.Survey, error) {
	return r.getWhere(ctx, "encuestaid = ?", id)
}

// GetByShortLink encuesta por enlace corto (enc-<id>).
func (r *SurveyRepo) GetByShortLink(ctx context.Context, shortLink string) (*entity.Survey, error) {
	return r.getWhere(ctx, "enlacecorto = ?", shortLink)
}

func (r *SurveyRepo) getWhere(ctx context.Context, query string, arg any) (*entity.Survey, error) {
	db := r.db.WithContext(ctx)
	var m surveyModel
	err := db.First(&m, query, arg).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}
	s := toSurvey(&m)
	if s.Questions, err = loadQuestions(db, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func loadQuestions(db *gorm.DB, surveyID int64) ([]entity.Question, error) {
	var qs []questionModel
	if err := db.Where("encuestaid = ?", surveyID).Order("orden, preguntaid").Find(&qs).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(qs) == 0 {
		return []entity.Question{}, nil
	}
	ids := make([]int64, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.PreguntaID)
	}
	var opts []optionModel
	if err := db.Where("preguntaid IN ?", ids).Order("orden, opcionid").Find(&opts).Error; err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	byQuestion := make(map[int64][]entity.AnswerOption, len(qs))
	for i := range opts {
		byQuestion[opts[i].PreguntaID] = append(byQuestion[opts[i].PreguntaID], toOption(&opts[i]))
	}

	out := make([]entity.Question, 0, len(qs))
	for _, q := range qs {
		out = append(out, entity.Question{
			ID:       q.PreguntaID,
			SurveyID: q.EncuestaID,
			TypeID:   q.TipoPreguntaID,
			Text:     q.TextoPregunta,
			Order:    q.Orden,
			Required: q.EsObligatoria,
			Options:  byQuestion[q.PreguntaID],
		})
	}
	return out, nil
}

// Create inserta encuesta, preguntas y opciones en una transacción y asigna IDs y enlaces.
func (r *SurveyRepo) Create(ctx context.Context, s *entity.Survey) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := fromSurvey(s)
		m.EncuestaID = 0
		m.EnlaceLargo, m.EnlaceCorto = "", ""
		if err := tx.Create(&m).Error; err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: la empresa no existe", domain.ErrConstraint)
			}
			return fmt.Errorf("insert survey: %w", err)
		}
		long, short := r.links.Build(m.EncuestaID)
		if err := tx.Model(&surveyModel{}).Where("encuestaid = ?", m.EncuestaID).
			Updates(map[string]any{"enlacelargo": long, "enlacecorto": short}).Error; err != nil {
			return fmt.Errorf("update survey links: %w", err)
		}
		questions := cloneQuestions(s.Questions)
		for i := range questions {
			questions[i].ID = 0
			if err := insertQuestion(tx, m.EncuestaID, &questions[i]); err != nil {
				return err
			}
		}
		s.ID, s.LongLink, s.ShortLink, s.Questions = m.EncuestaID, long, short, questions
		return nil
	})
}

// Update actualiza campos y sincroniza preguntas y opciones en una transacción.
func (r *SurveyRepo) Update(ctx context.Context, s *entity.Survey) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&surveyModel{}).Where("encuestaid = ?", s.ID).Updates(map[string]any{
			"titulo":              s.Title,
			"descripcion":         s.Description,
			"fechainiciovigencia": s.ValidFrom,
			"fechafinvigencia":    s.ValidTo,
			"estado":              s.Status,
		})
		if res.Error != nil {
			return fmt.Errorf("update survey: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		var existing []questionModel
		if err := tx.Where("encuestaid = ?", s.ID).Find(&existing).Error; err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
		keep := map[int64]bool{}
		questions := cloneQuestions(s.Questions)
		for i := range questions {
			q := &questions[i]
			if q.ID == 0 {
				if err := insertQuestion(tx, s.ID, q); err != nil {
					return err
				}
				continue
			}
			keep[q.ID] = true
			if err := updateQuestion(tx, s.ID, q); err != nil {
				return err
			}
		}
		for _, old := range existing {
			if keep[old.PreguntaID] {
				continue
			}
			if err := deleteQuestion(tx, old.PreguntaID); err != nil {
				return err
			}
		}
		s.Questions = questions
		return nil
	})
}

func insertQuestion(tx *gorm.DB, surveyID int64, q *entity.Question) error {
	qm := questionModel{
		EncuestaID:     surveyID,
		TipoPreguntaID: q.TypeID,
		TextoPregunta:  q.Text,
		Orden:          q.Order,
		EsObligatoria:  q.Required,
	}
	if err := tx.Create(&qm).Error; err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	q.ID, q.SurveyID = qm.PreguntaID, surveyID
	for j := range q.Options {
		q.Options[j].ID = 0
		if err := insertOption(tx, q.ID, &q.Options[j]); err != nil {
			return err
		}
	}
	return nil
}

func updateQuestion(tx *gorm.DB, surveyID int64, q *entity.Question) error {
	err := tx.Model(&questionModel{}).Where("preguntaid = ? AND encuestaid = ?", q.ID, surveyID).Updates(map[string]any{
		"tipopreguntaid": q.TypeID,
		"textopregunta":  q.Text,
		"orden":          q.Order,
		"esobligatoria":  q.Required,
	}).Error
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	q.SurveyID = surveyID

	var existing []optionModel
	if err := tx.Where("preguntaid = ?", q.ID).Find(&existing).Error; err != nil {
		return fmt.Errorf("list options: %w", err)
	}
	keep := map[int64]bool{}
	for j := range q.Options {
		o := &q.Options[j]
		if o.ID == 0 {
			if err := insertOption(tx, q.ID, o); err != nil {
				return err
			}
			continue
		}
		keep[o.ID] = true
		o.QuestionID = q.ID
		om := fromOption(o)
		err := tx.Model(&optionModel{}).Where("opcionid = ? AND preguntaid = ?", o.ID, q.ID).Updates(map[string]any{
			"textoopcion": om.TextoOpcion,
			"valor":       om.Valor,
			"orden":       om.Orden,
		}).Error
		if err != nil {
			return fmt.Errorf("update option: %w", err)
		}
	}
	for _, old := range existing {
		if keep[old.OpcionID] {
			continue
		}
		if err := tx.Delete(&optionModel{}, "opcionid = ?", old.OpcionID).Error; err != nil {
			return fmt.Errorf("delete option: %w", err)
		}
	}
	return nil
}

func insertOption(tx *gorm.DB, questionID int64, o *entity.AnswerOption) error {
	o.QuestionID = questionID
	om := fromOption(o)
	if err := tx.Create(&om).Error; err != nil {
		return fmt.Errorf("insert option: %w", err)
	}
	o.ID = om.OpcionID
	return nil
}

func deleteQuestion(tx *gorm.DB, questionID int64) error {
	if err := tx.Delete(&optionModel{}, "preguntaid = ?", questionID).Error; err != nil {
		return fmt.Errorf("delete options: %w", err)
	}
	if err := tx.Delete(&questionModel{}, "preguntaid = ?", questionID).Error; err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

func cloneQuestions(qs []entity.Question) []entity.Question {
	out := make([]entity.Question, len(qs))
	for i, q := range qs {
		q.Options = append([]entity.AnswerOption(nil), q.Options...)
		out[i] = q
	}
	return out
}
