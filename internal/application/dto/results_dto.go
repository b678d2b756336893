package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SurveyResultsResponse resultados agregados de una encuesta.
type SurveyResultsResponse struct {
	EncuestaID       int64               `json:"encuestaID"`
	Titulo           string              `json:"titulo"`
	Estado           string              `json:"estado"`
	EmpresaNombre    string              `json:"empresaNombre"`
	EnlaceLargo      string              `json:"enlaceLargo"`
	TotalRespuestas  int                 `json:"totalRespuestas"`
	Preguntas        []QuestionResultDTO `json:"preguntas"`
	RespuestasPorDia []DailyCountDTO     `json:"respuestasPorDia"`
}

// QuestionResultDTO agregado por pregunta. Opciones para selección/escala; Textos para el resto.
type QuestionResultDTO struct {
	PreguntaID      int64             `json:"preguntaID"`
	TipoPreguntaID  int64             `json:"tipoPreguntaID"`
	TextoPregunta   string            `json:"textoPregunta"`
	Orden           int               `json:"orden"`
	TotalRespuestas int               `json:"totalRespuestas"` // respuestas que contestaron la pregunta
	Opciones        []OptionResultDTO `json:"opciones,omitempty"`
	Promedio        *decimal.Decimal  `json:"promedio,omitempty"` // solo escala lineal
	Textos          []TextAnswerDTO   `json:"textos,omitempty"`
}

// OptionResultDTO conteo de una opción.
type OptionResultDTO struct {
	OpcionID    int64           `json:"opcionID"`
	TextoOpcion string          `json:"textoOpcion"`
	Cantidad    int             `json:"cantidad"`
	Porcentaje  decimal.Decimal `json:"porcentaje"`
}

// TextAnswerDTO respuesta abierta con su fecha.
type TextAnswerDTO struct {
	Texto          string    `json:"texto"`
	FechaRespuesta time.Time `json:"fechaRespuesta"`
}

// DailyCountDTO respuestas recibidas en un día (YYYY-MM-DD).
type DailyCountDTO struct {
	Fecha    string `json:"fecha"`
	Cantidad int    `json:"cantidad"`
}
