package dto

import "time"

// SubmitResponseRequest respuestas enviadas desde la vista pública.
type SubmitResponseRequest struct {
	IdentificadorUsuario string          `json:"identificadorUsuario" validate:"max=200"` // opcional: email o nombre
	Respuestas           []AnswerRequest `json:"respuestas" validate:"dive"`
}

// AnswerRequest respuesta a una pregunta: opciones elegidas o texto.
type AnswerRequest struct {
	PreguntaID int64   `json:"preguntaID" validate:"required,min=1"`
	OpcionIDs  []int64 `json:"opcionIDs"`
	Texto      string  `json:"texto" validate:"max=5000"`
}

// SubmitResponseResult confirmación de envío.
type SubmitResponseResult struct {
	EncuestaRespondidaID int64     `json:"encuestaRespondidaID"`
	Token                string    `json:"token"`
	FechaRespuesta       time.Time `json:"fechaRespuesta"`
	Mensaje              string    `json:"mensaje"`
}
