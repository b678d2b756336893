package entity

// Tipos de pregunta (tabla de referencia fija).
const (
	TypeShortText int64 = 1
	TypeParagraph int64 = 2
	TypeMultiple  int64 = 3
	TypeCheckbox  int64 = 4
	TypeScale     int64 = 5
	TypeDate      int64 = 6
)

// QuestionType entrada de la tabla de tipos de pregunta.
type QuestionType struct {
	ID   int64
	Name string
}

// DefaultQuestionTypes contenido inicial de la tabla de tipos.
func DefaultQuestionTypes() []QuestionType {
	return []QuestionType{
		{ID: TypeShortText, Name: "Texto Corto"},
		{ID: TypeParagraph, Name: "Párrafo"},
		{ID: TypeMultiple, Name: "Opción Multiple"},
		{ID: TypeCheckbox, Name: "Casillas de Verificación"},
		{ID: TypeScale, Name: "Escala Lineal"},
		{ID: TypeDate, Name: "Fecha"},
	}
}

// TypeNeedsOptions informa si el tipo requiere opciones de respuesta.
func TypeNeedsOptions(typeID int64) bool {
	return typeID == TypeMultiple || typeID == TypeCheckbox || typeID == TypeScale
}
