package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
	"github.com/shopspring/decimal"
)

var _ repository.SurveyRepository = (*SurveyRepo)(nil)

// SurveyRepo encuestas, preguntas y opciones sobre PostgreSQL.
type SurveyRepo struct {
	db    Querier
	links survey.LinkBuilder
}

// NewSurveyRepository construye el adaptador. links genera los enlaces al asignar el ID.
func NewSurveyRepository(db Querier, links survey.LinkBuilder) *SurveyRepo {
	return &SurveyRepo{db: db, links: links}
}

const surveyColumns = `encuestaid, empresaid, usuariocreadorid, titulo, descripcion, fechacreacion,
	fechainiciovigencia, fechafinvigencia, estado, enlacelargo, enlacecorto`

func scanSurvey(row pgx.Row) (*entity.Survey, error) {
	var s entity.Survey
	err := row.Scan(&s.ID, &s.CompanyID, &s.CreatorID, &s.Title, &s.Description, &s.CreatedAt,
		&s.ValidFrom, &s.ValidTo, &s.Status, &s.LongLink, &s.ShortLink)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List encuestas sin preguntas, más recientes primero.
func (r *SurveyRepo) List(ctx context.Context) ([]*entity.Survey, error) {
	rows, err := r.db.Query(ctx, `SELECT `+surveyColumns+` FROM encuesta ORDER BY fechacreacion DESC, encuestaid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	defer rows.Close()

	list := []*entity.Survey{}
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetByID encuesta con preguntas y opciones.
func (r *SurveyRepo) GetByID(ctx context.Context, id int64) (*entity.Survey, error) {
	return r.getWhere(ctx, `encuestaid = $1`, id)
}

// GetByShortLink encuesta por enlace corto (enc-<id>).
func (r *SurveyRepo) GetByShortLink(ctx context.Context, shortLink string) (*entity.Survey, error) {
	return r.getWhere(ctx, `enlacecorto = $1`, shortLink)
}

func (r *SurveyRepo) getWhere(ctx context.Context, where string, arg any) (*entity.Survey, error) {
	s, err := scanSurvey(r.db.QueryRow(ctx, `SELECT `+surveyColumns+` FROM encuesta WHERE `+where+` LIMIT 1`, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if s.Questions, err = loadQuestions(ctx, r.db, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

// loadQuestions preguntas ordenadas por orden y sus opciones (una consulta por tabla).
func loadQuestions(ctx context.Context, db Querier, surveyID int64) ([]entity.Question, error) {
	rows, err := db.Query(ctx, `
		SELECT preguntaid, encuestaid, tipopreguntaid, textopregunta, orden, esobligatoria
		  FROM pregunta
		 WHERE encuestaid = $1
		 ORDER BY orden, preguntaid`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	questions := []entity.Question{}
	index := map[int64]int{}
	for rows.Next() {
		var q entity.Question
		if err := rows.Scan(&q.ID, &q.SurveyID, &q.TypeID, &q.Text, &q.Order, &q.Required); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan question: %w", err)
		}
		index[q.ID] = len(questions)
		questions = append(questions, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return questions, nil
	}

	rows, err = db.Query(ctx, `
		SELECT o.opcionid, o.preguntaid, o.textoopcion, o.valor, o.orden
		  FROM opcionrespuesta o
		  JOIN pregunta p ON p.preguntaid = o.preguntaid
		 WHERE p.encuestaid = $1
		 ORDER BY o.orden, o.opcionid`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			o     entity.AnswerOption
			value decimal.NullDecimal
		)
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.Text, &value, &o.Order); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		if value.Valid {
			v := value.Decimal
			o.Value = &v
		}
		if i, ok := index[o.QuestionID]; ok {
			questions[i].Options = append(questions[i].Options, o)
		}
	}
	return questions, rows.Err()
}

// Create inserta encuesta, preguntas y opciones en una transacción y asigna IDs y enlaces.
func (r *SurveyRepo) Create(ctx context.Context, s *entity.Survey) error {
	questions := cloneQuestions(s.Questions)
	var id int64
	var long, short string
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		const insert = `
			INSERT INTO encuesta (empresaid, usuariocreadorid, titulo, descripcion, fechacreacion,
			                      fechainiciovigencia, fechafinvigencia, estado)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING encuestaid`
		err := tx.QueryRow(ctx, insert,
			s.CompanyID, s.CreatorID, s.Title, s.Description, s.CreatedAt,
			s.ValidFrom, s.ValidTo, s.Status,
		).Scan(&id)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: la empresa no existe", domain.ErrConstraint)
			}
			return fmt.Errorf("insert survey: %w", err)
		}

		long, short = r.links.Build(id)
		if _, err := tx.Exec(ctx, `UPDATE encuesta SET enlacelargo = $2, enlacecorto = $3 WHERE encuestaid = $1`,
			id, long, short); err != nil {
			return fmt.Errorf("update survey links: %w", err)
		}
		for i := range questions {
			questions[i].ID = 0
			if err := insertQuestion(ctx, tx, id, &questions[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.ID, s.LongLink, s.ShortLink, s.Questions = id, long, short, questions
	return nil
}

// Update actualiza campos y sincroniza preguntas y opciones en una transacción.
func (r *SurveyRepo) Update(ctx context.Context, s *entity.Survey) error {
	questions := cloneQuestions(s.Questions)
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		const update = `
			UPDATE encuesta
			   SET titulo = $2, descripcion = $3, fechainiciovigencia = $4, fechafinvigencia = $5, estado = $6
			 WHERE encuestaid = $1`
		cmd, err := tx.Exec(ctx, update, s.ID, s.Title, s.Description, s.ValidFrom, s.ValidTo, s.Status)
		if err != nil {
			return fmt.Errorf("update survey: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}

		existing, err := ids(ctx, tx, `SELECT preguntaid FROM pregunta WHERE encuestaid = $1`, s.ID)
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
		keep := map[int64]bool{}
		for i := range questions {
			q := &questions[i]
			if q.ID == 0 {
				if err := insertQuestion(ctx, tx, s.ID, q); err != nil {
					return err
				}
				continue
			}
			keep[q.ID] = true
			if err := updateQuestion(ctx, tx, s.ID, q); err != nil {
				return err
			}
		}
		for _, old := range existing {
			if keep[old] {
				continue
			}
			if _, err := tx.Exec(ctx, `DELETE FROM opcionrespuesta WHERE preguntaid = $1`, old); err != nil {
				return mapSyncError("delete options", err)
			}
			if _, err := tx.Exec(ctx, `DELETE FROM pregunta WHERE preguntaid = $1`, old); err != nil {
				return mapSyncError("delete question", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Questions = questions
	return nil
}

func insertQuestion(ctx context.Context, tx pgx.Tx, surveyID int64, q *entity.Question) error {
	const query = `
		INSERT INTO pregunta (encuestaid, tipopreguntaid, textopregunta, orden, esobligatoria)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING preguntaid`
	if err := tx.QueryRow(ctx, query, surveyID, q.TypeID, q.Text, q.Order, q.Required).Scan(&q.ID); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	q.SurveyID = surveyID
	for j := range q.Options {
		q.Options[j].ID = 0
		if err := insertOption(ctx, tx, q.ID, &q.Options[j]); err != nil {
			return err
		}
	}
	return nil
}

func updateQuestion(ctx context.Context, tx pgx.Tx, surveyID int64, q *entity.Question) error {
	const query = `
		UPDATE pregunta SET tipopreguntaid = $3, textopregunta = $4, orden = $5, esobligatoria = $6
		 WHERE preguntaid = $1 AND encuestaid = $2`
	if _, err := tx.Exec(ctx, query, q.ID, surveyID, q.TypeID, q.Text, q.Order, q.Required); err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	q.SurveyID = surveyID

	existing, err := ids(ctx, tx, `SELECT opcionid FROM opcionrespuesta WHERE preguntaid = $1`, q.ID)
	if err != nil {
		return fmt.Errorf("list options: %w", err)
	}
	keep := map[int64]bool{}
	for j := range q.Options {
		o := &q.Options[j]
		if o.ID == 0 {
			if err := insertOption(ctx, tx, q.ID, o); err != nil {
				return err
			}
			continue
		}
		keep[o.ID] = true
		o.QuestionID = q.ID
		_, err := tx.Exec(ctx, `UPDATE opcionrespuesta SET textoopcion = $3, valor = $4, orden = $5
			WHERE opcionid = $1 AND preguntaid = $2`, o.ID, q.ID, o.Text, nullDecimal(o.Value), o.Order)
		if err != nil {
			return fmt.Errorf("update option: %w", err)
		}
	}
	for _, old := range existing {
		if keep[old] {
			continue
		}
		if _, err := tx.Exec(ctx, `DELETE FROM opcionrespuesta WHERE opcionid = $1`, old); err != nil {
			return mapSyncError("delete option", err)
		}
	}
	return nil
}

func insertOption(ctx context.Context, tx pgx.Tx, questionID int64, o *entity.AnswerOption) error {
	o.QuestionID = questionID
	const query = `
		INSERT INTO opcionrespuesta (preguntaid, textoopcion, valor, orden)
		VALUES ($1, $2, $3, $4)
		RETURNING opcionid`
	if err := tx.QueryRow(ctx, query, questionID, o.Text, nullDecimal(o.Value), o.Order).Scan(&o.ID); err != nil {
		return fmt.Errorf("insert option: %w", err)
	}
	return nil
}

// mapSyncError: borrar preguntas u opciones ya respondidas viola la FK de respuestausuario.
func mapSyncError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return domain.ErrSurveyHasResponses
	}
	return fmt.Errorf("%s: %w", op, err)
}

func ids(ctx context.Context, tx pgx.Tx, query string, arg int64) ([]int64, error) {
	rows, err := tx.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func nullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}

func cloneQuestions(qs []entity.Question) []entity.Question {
	out := make([]entity.Question, len(qs))
	for i, q := range qs {
		q.Options = append([]entity.AnswerOption(nil), q.Options...)
		out[i] = q
	}
	return out
}
