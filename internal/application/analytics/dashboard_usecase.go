// Package analytics contiene el resumen del Dashboard de encuestas.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/application/lookup"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/policy"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardRecent = 5 // encuestas en el widget de recientes

// DashboardUseCase genera los indicadores del dashboard para el usuario autenticado.
type DashboardUseCase struct {
	surveys   repository.SurveyRepository
	responses repository.ResponseRepository
	companies repository.CompanyRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(surveys repository.SurveyRepository, responses repository.ResponseRepository, companies repository.CompanyRepository) *DashboardUseCase {
	return &DashboardUseCase{surveys: surveys, responses: responses, companies: companies}
}

// GetSummary construye el DashboardSummaryDTO sobre las encuestas visibles para p.
//
// Tres lecturas en paralelo:
//  1. encuestas
//  2. conteo de respuestas por encuesta
//  3. nombres de empresa
func (uc *DashboardUseCase) GetSummary(ctx context.Context, p policy.Principal) (*dto.DashboardSummaryDTO, error) {
	type surveysResult struct {
		list []*entity.Survey
		err  error
	}
	type countsResult struct {
		counts map[int64]int
		err    error
	}
	type namesResult struct {
		names *lookup.CompanyNames
		err   error
	}

	surveysCh := make(chan surveysResult, 1)
	countsCh := make(chan countsResult, 1)
	namesCh := make(chan namesResult, 1)

	go func() {
		list, err := uc.surveys.List(ctx)
		surveysCh <- surveysResult{list, err}
	}()
	go func() {
		counts, err := uc.responses.CountBySurvey(ctx)
		countsCh <- countsResult{counts, err}
	}()
	go func() {
		names, err := lookup.LoadCompanyNames(ctx, uc.companies)
		namesCh <- namesResult{names, err}
	}()

	surveys := <-surveysCh
	counts := <-countsCh
	names := <-namesCh

	if surveys.err != nil {
		return nil, fmt.Errorf("dashboard: encuestas: %w", surveys.err)
	}
	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: respuestas: %w", counts.err)
	}
	if names.err != nil {
		return nil, fmt.Errorf("dashboard: empresas: %w", names.err)
	}

	visible := policy.FilterSurveys(p, surveys.list)
	out := &dto.DashboardSummaryDTO{Recientes: []dto.RecentSurveyDTO{}}
	answered := 0
	for _, s := range visible {
		out.TotalEncuestas++
		out.TotalRespuestas += counts.counts[s.ID]
		switch s.Status {
		case entity.SurveyPublished:
			out.Publicadas++
			if counts.counts[s.ID] > 0 {
				answered++
			}
		case entity.SurveyDraft:
			out.Borradores++
		case entity.SurveyClosed:
			out.Cerradas++
		}
	}
	out.TasaRespuesta = responseRate(answered, out.Publicadas)

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	for i, s := range visible {
		if i == dashboardRecent {
			break
		}
		out.Recientes = append(out.Recientes, dto.RecentSurveyDTO{
			EncuestaID:    s.ID,
			Titulo:        s.Title,
			Estado:        s.Status,
			EmpresaNombre: names.names.Name(s.CompanyID),
			FechaCreacion: s.CreatedAt,
			Respuestas:    counts.counts[s.ID],
		})
	}
	return out, nil
}

// responseRate porcentaje answered/published con dos decimales; 0 si no hay publicadas.
func responseRate(answered, published int) decimal.Decimal {
	if published == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(answered)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(published))).
		Round(2)
}
