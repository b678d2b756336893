package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// Cuenta solo encuestas visibles para el usuario autenticado.
type DashboardSummaryDTO struct {
	TotalEncuestas  int               `json:"totalEncuestas"`
	Publicadas      int               `json:"publicadas"`
	Borradores      int               `json:"borradores"`
	Cerradas        int               `json:"cerradas"`
	TotalRespuestas int               `json:"totalRespuestas"`
	TasaRespuesta   decimal.Decimal   `json:"tasaRespuesta"` // % de publicadas con al menos una respuesta
	Recientes       []RecentSurveyDTO `json:"recientes"`
}

// RecentSurveyDTO encuesta reciente del widget del dashboard.
type RecentSurveyDTO struct {
	EncuestaID    int64     `json:"encuestaID"`
	Titulo        string    `json:"titulo"`
	Estado        string    `json:"estado"`
	EmpresaNombre string    `json:"empresaNombre"`
	FechaCreacion time.Time `json:"fechaCreacion"`
	Respuestas    int       `json:"respuestas"`
}
