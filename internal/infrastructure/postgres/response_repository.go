package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
)

var _ repository.ResponseRepository = (*ResponseRepo)(nil)

// ResponseRepo encuestarespondida + respuestausuario sobre PostgreSQL.
type ResponseRepo struct {
	db Querier
}

// NewResponseRepository construye el adaptador.
func NewResponseRepository(db Querier) *ResponseRepo {
	return &ResponseRepo{db: db}
}

// Create guarda la respuesta y sus Answers en una transacción.
func (r *ResponseRepo) Create(ctx context.Context, resp *entity.SurveyResponse) error {
	answers := append([]entity.Answer(nil), resp.Answers...)
	var id int64
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		const insert = `
			INSERT INTO encuestarespondida (encuestaid, identificadorusuario, token, fecharespuesta)
			VALUES ($1, $2, $3, $4)
			RETURNING encuestarespondidaid`
		if err := tx.QueryRow(ctx, insert, resp.SurveyID, resp.Respondent, resp.Token, resp.SubmittedAt).Scan(&id); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert response: %w", err)
		}

		// Lote: una ida y vuelta para todas las respuestas.
		batch := &pgx.Batch{}
		for i := range answers {
			a := &answers[i]
			batch.Queue(`
				INSERT INTO respuestausuario (encuestarespondidaid, preguntaid, opcionid, textorespuesta)
				VALUES ($1, $2, $3, $4)
				RETURNING respuestaid`, id, a.QuestionID, a.OptionID, a.Text).QueryRow(func(row pgx.Row) error {
				a.ResponseID = id
				return row.Scan(&a.ID)
			})
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			if isForeignKeyViolation(err) {
				return domain.Validationf("la respuesta referencia una pregunta u opción inexistente")
			}
			return fmt.Errorf("insert answers: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	resp.ID, resp.Answers = id, answers
	return nil
}

// ListBySurvey respuestas de la encuesta en orden de envío.
func (r *ResponseRepo) ListBySurvey(ctx context.Context, surveyID int64) ([]*entity.SurveyResponse, error) {
	rows, err := r.db.Query(ctx, `
		SELECT encuestarespondidaid, encuestaid, identificadorusuario, token, fecharespuesta
		  FROM encuestarespondida
		 WHERE encuestaid = $1
		 ORDER BY fecharespuesta, encuestarespondidaid`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	list := []*entity.SurveyResponse{}
	index := map[int64]*entity.SurveyResponse{}
	for rows.Next() {
		var resp entity.SurveyResponse
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &resp.Respondent, &resp.Token, &resp.SubmittedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan response: %w", err)
		}
		list = append(list, &resp)
		index[resp.ID] = &resp
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	rows, err = r.db.Query(ctx, `
		SELECT a.respuestaid, a.encuestarespondidaid, a.preguntaid, a.opcionid, a.textorespuesta
		  FROM respuestausuario a
		  JOIN encuestarespondida e ON e.encuestarespondidaid = a.encuestarespondidaid
		 WHERE e.encuestaid = $1
		 ORDER BY a.respuestaid`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a entity.Answer
		if err := rows.Scan(&a.ID, &a.ResponseID, &a.QuestionID, &a.OptionID, &a.Text); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		if resp, ok := index[a.ResponseID]; ok {
			resp.Answers = append(resp.Answers, a)
		}
	}
	return list, rows.Err()
}

// CountBySurvey número de respuestas por encuesta.
func (r *ResponseRepo) CountBySurvey(ctx context.Context) (map[int64]int, error) {
	rows, err := r.db.Query(ctx, `SELECT encuestaid, COUNT(*) FROM encuestarespondida GROUP BY encuestaid`)
	if err != nil {
		return nil, fmt.Errorf("count responses: %w", err)
	}
	defer rows.Close()

	out := map[int64]int{}
	for rows.Next() {
		var surveyID int64
		var total int
		if err := rows.Scan(&surveyID, &total); err != nil {
			return nil, fmt.Errorf("scan response count: %w", err)
		}
		out[surveyID] = total
	}
	return out, rows.Err()
}
