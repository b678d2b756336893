package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
)

// ThanksMessage confirmación mostrada tras enviar respuestas.
const ThanksMessage = "¡Gracias por tu respuesta!"

// ResponseUseCase vista pública de encuestas y recepción de respuestas.
type ResponseUseCase struct {
	surveys   repository.SurveyRepository
	responses repository.ResponseRepository
	companies repository.CompanyRepository
	now       func() time.Time
}

// NewResponseUseCase construye el caso de uso.
func NewResponseUseCase(surveys repository.SurveyRepository, responses repository.ResponseRepository, companies repository.CompanyRepository) *ResponseUseCase {
	return &ResponseUseCase{surveys: surveys, responses: responses, companies: companies, now: time.Now}
}

// GetPublic encuesta publicada por su enlace corto. Borradores y cerradas no se exponen.
func (uc *ResponseUseCase) GetPublic(ctx context.Context, shortLink string) (*dto.SurveyResponse, error) {
	s, err := uc.surveys.GetByShortLink(ctx, shortLink)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Status != entity.SurveyPublished {
		return nil, domain.ErrNotFound
	}
	c, err := uc.companies.GetByID(ctx, s.CompanyID)
	if err != nil {
		return nil, err
	}
	s.CompanyName = entity.UnknownCompanyName
	if c != nil {
		s.CompanyName = c.Name
	}
	return entityToSurveyResponse(s), nil
}

// Submit valida y persiste las respuestas de una encuesta publicada y vigente.
func (uc *ResponseUseCase) Submit(ctx context.Context, shortLink string, in dto.SubmitResponseRequest) (*dto.SubmitResponseResult, error) {
	s, err := uc.surveys.GetByShortLink(ctx, shortLink)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Status == entity.SurveyDraft {
		return nil, domain.ErrNotFound
	}
	now := uc.now().UTC()
	if !s.AcceptsResponses(now) {
		return nil, domain.ErrSurveyClosed
	}

	values := make(map[int64]survey.AnswerValue, len(in.Respuestas))
	for _, a := range in.Respuestas {
		v := values[a.PreguntaID]
		v.OptionIDs = append(v.OptionIDs, a.OpcionIDs...)
		if a.Texto != "" {
			v.Text = a.Texto
		}
		values[a.PreguntaID] = v
	}
	answers, err := survey.ValidateAnswers(s.Questions, values)
	if err != nil {
		return nil, err
	}

	resp := &entity.SurveyResponse{
		SurveyID:    s.ID,
		Respondent:  in.IdentificadorUsuario,
		Token:       uuid.NewString(),
		SubmittedAt: now,
		Answers:     answers,
	}
	if err := uc.responses.Create(ctx, resp); err != nil {
		return nil, err
	}
	return &dto.SubmitResponseResult{
		EncuestaRespondidaID: resp.ID,
		Token:                resp.Token,
		FechaRespuesta:       resp.SubmittedAt,
		Mensaje:              ThanksMessage,
	}, nil
}
