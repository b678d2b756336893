// Package survey máquina de estados del constructor de encuestas, enlaces públicos
// y validación de respuestas.
package survey

import (
	"strings"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Builder estado en edición de una encuesta. Questions y sus Options conservan
// Order contiguo 1..N tras cada operación.
type Builder struct {
	Title       string
	Description string
	ValidFrom   *time.Time
	ValidTo     *time.Time
	Status      string
	Questions   []entity.Question
}

// QuestionPatch campos modificables de una pregunta; nil deja el valor actual.
type QuestionPatch struct {
	Text     *string
	TypeID   *int64
	Required *bool
}

// OptionPatch campos modificables de una opción; nil deja el valor actual.
type OptionPatch struct {
	Text  *string
	Value *decimal.Decimal
}

// NewBuilder borrador vacío.
func NewBuilder() *Builder {
	return &Builder{Status: entity.SurveyDraft}
}

// FromSurvey carga una encuesta existente (copia profunda de preguntas y opciones).
func FromSurvey(s *entity.Survey) *Builder {
	b := &Builder{
		Title:       s.Title,
		Description: s.Description,
		ValidFrom:   s.ValidFrom,
		ValidTo:     s.ValidTo,
		Status:      s.Status,
	}
	if b.Status == "" {
		b.Status = entity.SurveyDraft
	}
	b.Questions = make([]entity.Question, len(s.Questions))
	for i, q := range s.Questions {
		q.Options = append([]entity.AnswerOption(nil), q.Options...)
		b.Questions[i] = q
	}
	return b
}

// NeedsOptions informa si el tipo de pregunta usa opciones (selección, casillas, escala).
func NeedsOptions(typeID int64) bool {
	return entity.TypeNeedsOptions(typeID)
}

// AddQuestion agrega una pregunta de texto corto no obligatoria al final y devuelve su índice.
func (b *Builder) AddQuestion() int {
	b.Questions = append(b.Questions, entity.Question{
		TypeID: entity.TypeShortText,
		Order:  len(b.Questions) + 1,
	})
	return len(b.Questions) - 1
}

// UpdateQuestion aplica patch a la pregunta i.
func (b *Builder) UpdateQuestion(i int, patch QuestionPatch) error {
	if err := b.checkQuestion(i); err != nil {
		return err
	}
	q := &b.Questions[i]
	if patch.Text != nil {
		q.Text = *patch.Text
	}
	if patch.TypeID != nil {
		if !validType(*patch.TypeID) {
			return domain.Validationf("tipo de pregunta inválido: %d", *patch.TypeID)
		}
		q.TypeID = *patch.TypeID
	}
	if patch.Required != nil {
		q.Required = *patch.Required
	}
	return nil
}

// DeleteQuestion elimina la pregunta i y renumera las restantes.
func (b *Builder) DeleteQuestion(i int) error {
	if err := b.checkQuestion(i); err != nil {
		return err
	}
	b.Questions = append(b.Questions[:i], b.Questions[i+1:]...)
	renumberQuestions(b.Questions)
	return nil
}

// AddOption agrega una opción vacía al final de la pregunta qi y devuelve su índice.
func (b *Builder) AddOption(qi int) (int, error) {
	if err := b.checkQuestion(qi); err != nil {
		return 0, err
	}
	q := &b.Questions[qi]
	q.Options = append(q.Options, entity.AnswerOption{Order: len(q.Options) + 1})
	return len(q.Options) - 1, nil
}

// UpdateOption aplica patch a la opción oi de la pregunta qi.
func (b *Builder) UpdateOption(qi, oi int, patch OptionPatch) error {
	if err := b.checkOption(qi, oi); err != nil {
		return err
	}
	o := &b.Questions[qi].Options[oi]
	if patch.Text != nil {
		o.Text = *patch.Text
	}
	if patch.Value != nil {
		v := *patch.Value
		o.Value = &v
	}
	return nil
}

// DeleteOption elimina la opción oi de la pregunta qi y renumera.
func (b *Builder) DeleteOption(qi, oi int) error {
	if err := b.checkOption(qi, oi); err != nil {
		return err
	}
	q := &b.Questions[qi]
	q.Options = append(q.Options[:oi], q.Options[oi+1:]...)
	renumberOptions(q.Options)
	return nil
}

// Normalize renumera preguntas y opciones por posición y descarta opciones
// de preguntas que no las usan.
func (b *Builder) Normalize() {
	renumberQuestions(b.Questions)
	for i := range b.Questions {
		q := &b.Questions[i]
		if !NeedsOptions(q.TypeID) {
			q.Options = nil
			continue
		}
		renumberOptions(q.Options)
	}
}

// Save valida y devuelve la encuesta a persistir conservando el estado actual.
func (b *Builder) Save() (*entity.Survey, error) {
	return b.build(b.Status)
}

// Publish valida y devuelve la encuesta a persistir con estado Publicada.
func (b *Builder) Publish() (*entity.Survey, error) {
	return b.build(entity.SurveyPublished)
}

func (b *Builder) build(status string) (*entity.Survey, error) {
	title := strings.TrimSpace(b.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}
	if b.ValidFrom != nil && b.ValidTo != nil && b.ValidTo.Before(*b.ValidFrom) {
		return nil, domain.Validationf("la fecha de fin debe ser posterior a la de inicio")
	}
	for _, q := range b.Questions {
		if !validType(q.TypeID) {
			return nil, domain.Validationf("tipo de pregunta inválido: %d", q.TypeID)
		}
	}
	if status == "" {
		status = entity.SurveyDraft
	}
	b.Normalize()

	s := &entity.Survey{
		Title:       title,
		Description: strings.TrimSpace(b.Description),
		ValidFrom:   b.ValidFrom,
		ValidTo:     b.ValidTo,
		Status:      status,
		Questions:   make([]entity.Question, len(b.Questions)),
	}
	for i, q := range b.Questions {
		q.Options = append([]entity.AnswerOption(nil), q.Options...)
		s.Questions[i] = q
	}
	return s, nil
}

func (b *Builder) checkQuestion(i int) error {
	if i < 0 || i >= len(b.Questions) {
		return domain.Validationf("pregunta %d inexistente", i+1)
	}
	return nil
}

func (b *Builder) checkOption(qi, oi int) error {
	if err := b.checkQuestion(qi); err != nil {
		return err
	}
	if oi < 0 || oi >= len(b.Questions[qi].Options) {
		return domain.Validationf("opción %d inexistente en la pregunta %d", oi+1, qi+1)
	}
	return nil
}

func validType(id int64) bool {
	return id >= entity.TypeShortText && id <= entity.TypeDate
}

func renumberQuestions(qs []entity.Question) {
	for i := range qs {
		qs[i].Order = i + 1
	}
}

func renumberOptions(opts []entity.AnswerOption) {
	for i := range opts {
		opts[i].Order = i + 1
	}
}
