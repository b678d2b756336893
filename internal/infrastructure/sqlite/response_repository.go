package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"gorm.io/gorm"
)

var _ repository.ResponseRepository = (*ResponseRepo)(nil)

// ResponseRepo respuestas (encuestarespondida + respuestausuario) sobre gorm.
type ResponseRepo struct {
	db *gorm.DB
}

// NewResponseRepository construye el adaptador.
func NewResponseRepository(db *gorm.DB) *ResponseRepo {
	return &ResponseRepo{db: db}
}

// Create guarda la respuesta y sus Answers en una transacción.
func (r *ResponseRepo) Create(ctx context.Context, resp *entity.SurveyResponse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := responseModel{
			EncuestaID:           resp.SurveyID,
			IdentificadorUsuario: resp.Respondent,
			Token:                resp.Token,
			FechaRespuesta:       resp.SubmittedAt,
		}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("insert response: %w", err)
		}
		for i := range resp.Answers {
			a := &resp.Answers[i]
			am := answerModel{
				EncuestaRespondidaID: m.EncuestaRespondidaID,
				PreguntaID:           a.QuestionID,
				OpcionID:             a.OptionID,
				TextoRespuesta:       a.Text,
			}
			if err := tx.Create(&am).Error; err != nil {
				return fmt.Errorf("insert answer: %w", err)
			}
			a.ID, a.ResponseID = am.RespuestaID, m.EncuestaRespondidaID
		}
		resp.ID = m.EncuestaRespondidaID
		return nil
	})
}

// ListBySurvey respuestas de la encuesta en orden de envío.
func (r *ResponseRepo) ListBySurvey(ctx context.Context, surveyID int64) ([]*entity.SurveyResponse, error) {
	db := r.db.WithContext(ctx)
	var rows []responseModel
	if err := db.Where("encuestaid = ?", surveyID).Order("fecharespuesta, encuestarespondidaid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	if len(rows) == 0 {
		return []*entity.SurveyResponse{}, nil
	}
	ids := make([]int64, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.EncuestaRespondidaID)
	}
	var answers []answerModel
	if err := db.Where("encuestarespondidaid IN ?", ids).Order("respuestaid").Find(&answers).Error; err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	byResponse := make(map[int64][]entity.Answer, len(rows))
	for _, a := range answers {
		byResponse[a.EncuestaRespondidaID] = append(byResponse[a.EncuestaRespondidaID], entity.Answer{
			ID:         a.RespuestaID,
			ResponseID: a.EncuestaRespondidaID,
			QuestionID: a.PreguntaID,
			OptionID:   a.OpcionID,
			Text:       a.TextoRespuesta,
		})
	}

	out := make([]*entity.SurveyResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, &entity.SurveyResponse{
			ID:          m.EncuestaRespondidaID,
			SurveyID:    m.EncuestaID,
			Respondent:  m.IdentificadorUsuario,
			Token:       m.Token,
			SubmittedAt: m.FechaRespuesta,
			Answers:     byResponse[m.EncuestaRespondidaID],
		})
	}
	return out, nil
}

// CountBySurvey número de respuestas por encuesta.
func (r *ResponseRepo) CountBySurvey(ctx context.Context) (map[int64]int, error) {
	var rows []struct {
		EncuestaID int64
		Total      int
	}
	err := r.db.WithContext(ctx).Model(&responseModel{}).
		Select("encuestaid AS encuesta_id, COUNT(*) AS total").
		Group("encuestaid").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count responses: %w", err)
	}
	out := make(map[int64]int, len(rows))
	for _, row := range rows {
		out[row.EncuestaID] = row.Total
	}
	return out, nil
}
