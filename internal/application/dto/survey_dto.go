package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SurveyRequest documento completo que envía el constructor de encuestas.
// Las fechas de vigencia usan el formato YYYY-MM-DD.
type SurveyRequest struct {
	EmpresaID           int64             `json:"empresaID" validate:"omitempty,min=1"`
	Titulo              string            `json:"titulo" validate:"max=300"`
	Descripcion         string            `json:"descripcion" validate:"max=2000"`
	FechaInicioVigencia string            `json:"fechaInicioVigencia" validate:"omitempty,datetime=2006-01-02"`
	FechaFinVigencia    string            `json:"fechaFinVigencia" validate:"omitempty,datetime=2006-01-02"`
	Preguntas           []QuestionRequest `json:"preguntas" validate:"dive"`
}

// QuestionRequest pregunta en el documento del constructor. El orden es la posición.
// PreguntaID identifica una pregunta existente al editar; cero para una nueva.
type QuestionRequest struct {
	PreguntaID     int64           `json:"preguntaID"`
	TipoPreguntaID int64           `json:"tipoPreguntaID" validate:"required,min=1,max=6"`
	TextoPregunta  string          `json:"textoPregunta" validate:"max=500"`
	EsObligatoria  bool            `json:"esObligatoria"`
	Opciones       []OptionRequest `json:"opciones" validate:"dive"`
}

// OptionRequest opción de respuesta en el documento del constructor.
type OptionRequest struct {
	OpcionID    int64            `json:"opcionID"`
	TextoOpcion string           `json:"textoOpcion" validate:"max=300"`
	Valor       *decimal.Decimal `json:"valor,omitempty"`
}

// SurveyFilter filtros del listado de encuestas.
type SurveyFilter struct {
	Q      string `query:"q"`
	Estado string `query:"estado"` // Todas, Borrador, Publicada, Cerrada
}

// SurveyResponse salida de una encuesta; Preguntas solo en el detalle.
type SurveyResponse struct {
	EncuestaID          int64              `json:"encuestaID"`
	EmpresaID           int64              `json:"empresaID"`
	EmpresaNombre       string             `json:"empresaNombre"`
	UsuarioCreadorID    int64              `json:"usuarioCreadorID"`
	Titulo              string             `json:"titulo"`
	Descripcion         string             `json:"descripcion"`
	FechaCreacion       time.Time          `json:"fechaCreacion"`
	FechaInicioVigencia string             `json:"fechaInicioVigencia,omitempty"`
	FechaFinVigencia    string             `json:"fechaFinVigencia,omitempty"`
	Estado              string             `json:"estado"`
	EnlaceLargo         string             `json:"enlaceLargo"`
	EnlaceCorto         string             `json:"enlaceCorto"`
	Preguntas           []QuestionResponse `json:"preguntas,omitempty"`
}

// QuestionResponse pregunta con sus opciones ordenadas.
type QuestionResponse struct {
	PreguntaID     int64            `json:"preguntaID"`
	TipoPreguntaID int64            `json:"tipoPreguntaID"`
	TextoPregunta  string           `json:"textoPregunta"`
	Orden          int              `json:"orden"`
	EsObligatoria  bool             `json:"esObligatoria"`
	Opciones       []OptionResponse `json:"opciones"`
}

// OptionResponse opción de respuesta.
type OptionResponse struct {
	OpcionID    int64            `json:"opcionID"`
	TextoOpcion string           `json:"textoOpcion"`
	Valor       *decimal.Decimal `json:"valor,omitempty"`
	Orden       int              `json:"orden"`
}

// SurveyListResponse lista de encuestas visibles.
type SurveyListResponse struct {
	Items []SurveyResponse `json:"items"`
	Total int              `json:"total"`
}

// QuestionTypeResponse entrada de la tabla de tipos de pregunta.
type QuestionTypeResponse struct {
	TipoPreguntaID int64  `json:"tipoPreguntaID"`
	NombreTipo     string `json:"nombreTipo"`
	UsaOpciones    bool   `json:"usaOpciones"`
}
