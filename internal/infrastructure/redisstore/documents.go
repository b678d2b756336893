package redisstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Documentos JSON guardados en Redis. Cada decodeX rechaza documentos sin sus campos obligatorios.

type companyDoc struct {
	EmpresaID     int64     `json:"empresaID"`
	Nombre        string    `json:"nombre"`
	NIT           string    `json:"nit"`
	FechaRegistro time.Time `json:"fechaRegistro"`
}

type userDoc struct {
	UsuarioID     int64     `json:"usuarioID"`
	EmpresaID     int64     `json:"empresaID"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"passwordHash"`
	Nombre        string    `json:"nombre"`
	Apellido      string    `json:"apellido"`
	Rol           string    `json:"rol"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fechaCreacion"`
}

type surveyDoc struct {
	EncuestaID          int64         `json:"encuestaID"`
	EmpresaID           int64         `json:"empresaID"`
	UsuarioCreadorID    int64         `json:"usuarioCreadorID"`
	Titulo              string        `json:"titulo"`
	Descripcion         string        `json:"descripcion"`
	FechaCreacion       time.Time     `json:"fechaCreacion"`
	FechaInicioVigencia *time.Time    `json:"fechaInicioVigencia,omitempty"`
	FechaFinVigencia    *time.Time    `json:"fechaFinVigencia,omitempty"`
	Estado              string        `json:"estado"`
	EnlaceLargo         string        `json:"enlaceLargo"`
	EnlaceCorto         string        `json:"enlaceCorto"`
	Preguntas           []questionDoc `json:"preguntas"`
}

type questionDoc struct {
	PreguntaID     int64       `json:"preguntaID"`
	TipoPreguntaID int64       `json:"tipoPreguntaID"`
	TextoPregunta  string      `json:"textoPregunta"`
	Orden          int         `json:"orden"`
	EsObligatoria  bool        `json:"esObligatoria"`
	Opciones       []optionDoc `json:"opciones"`
}

type optionDoc struct {
	OpcionID    int64            `json:"opcionID"`
	TextoOpcion string           `json:"textoOpcion"`
	Valor       *decimal.Decimal `json:"valor,omitempty"`
	Orden       int              `json:"orden"`
}

type responseDoc struct {
	EncuestaRespondidaID int64       `json:"encuestaRespondidaID"`
	EncuestaID           int64       `json:"encuestaID"`
	IdentificadorUsuario string      `json:"identificadorUsuario"`
	Token                string      `json:"token"`
	FechaRespuesta       time.Time   `json:"fechaRespuesta"`
	Respuestas           []answerDoc `json:"respuestas"`
}

type answerDoc struct {
	RespuestaID    int64   `json:"respuestaID"`
	PreguntaID     int64   `json:"preguntaID"`
	OpcionID       *int64  `json:"opcionID,omitempty"`
	TextoRespuesta *string `json:"textoRespuesta,omitempty"`
}

func missing(doc, field string) error {
	return fmt.Errorf("redis: documento %s incompleto: falta %s", doc, field)
}

func encodeCompany(c *entity.Company) ([]byte, error) {
	return json.Marshal(companyDoc{EmpresaID: c.ID, Nombre: c.Name, NIT: c.TaxID, FechaRegistro: c.RegisteredAt})
}

func decodeCompany(data []byte) (*entity.Company, error) {
	var d companyDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("redis: documento empresa: %w", err)
	}
	switch {
	case d.EmpresaID == 0:
		return nil, missing("empresa", "empresaID")
	case d.Nombre == "":
		return nil, missing("empresa", "nombre")
	case d.NIT == "":
		return nil, missing("empresa", "nit")
	}
	return &entity.Company{ID: d.EmpresaID, Name: d.Nombre, TaxID: d.NIT, RegisteredAt: d.FechaRegistro}, nil
}

func encodeUser(u *entity.User) ([]byte, error) {
	return json.Marshal(userDoc{
		UsuarioID:     u.ID,
		EmpresaID:     u.CompanyID,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Nombre:        u.FirstName,
		Apellido:      u.LastName,
		Rol:           u.Role,
		Estado:        u.Status,
		FechaCreacion: u.CreatedAt,
	})
}

func decodeUser(data []byte) (*entity.User, error) {
	var d userDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("redis: documento usuario: %w", err)
	}
	switch {
	case d.UsuarioID == 0:
		return nil, missing("usuario", "usuarioID")
	case d.EmpresaID == 0:
		return nil, missing("usuario", "empresaID")
	case d.Email == "":
		return nil, missing("usuario", "email")
	case d.Rol == "":
		return nil, missing("usuario", "rol")
	case d.Estado == "":
		return nil, missing("usuario", "estado")
	}
	return &entity.User{
		ID:           d.UsuarioID,
		CompanyID:    d.EmpresaID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FirstName:    d.Nombre,
		LastName:     d.Apellido,
		Role:         d.Rol,
		Status:       d.Estado,
		CreatedAt:    d.FechaCreacion,
	}, nil
}

func encodeSurvey(s *entity.Survey) ([]byte, error) {
	d := surveyDoc{
		EncuestaID:          s.ID,
		EmpresaID:           s.CompanyID,
		UsuarioCreadorID:    s.CreatorID,
		Titulo:              s.Title,
		Descripcion:         s.Description,
		FechaCreacion:       s.CreatedAt,
		FechaInicioVigencia: s.ValidFrom,
		FechaFinVigencia:    s.ValidTo,
		Estado:              s.Status,
		EnlaceLargo:         s.LongLink,
		EnlaceCorto:         s.ShortLink,
		Preguntas:           make([]questionDoc, 0, len(s.Questions)),
	}
	for _, q := range s.Questions {
		qd := questionDoc{
			PreguntaID:     q.ID,
			TipoPreguntaID: q.TypeID,
			TextoPregunta:  q.Text,
			Orden:          q.Order,
			EsObligatoria:  q.Required,
			Opciones:       make([]optionDoc, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			qd.Opciones = append(qd.Opciones, optionDoc{OpcionID: o.ID, TextoOpcion: o.Text, Valor: o.Value, Orden: o.Order})
		}
		d.Preguntas = append(d.Preguntas, qd)
	}
	return json.Marshal(d)
}

func decodeSurvey(data []byte) (*entity.Survey, error) {
	var d surveyDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("redis: documento encuesta: %w", err)
	}
	switch {
	case d.EncuestaID == 0:
		return nil, missing("encuesta", "encuestaID")
	case d.EmpresaID == 0:
		return nil, missing("encuesta", "empresaID")
	case d.Titulo == "":
		return nil, missing("encuesta", "titulo")
	case d.Estado == "":
		return nil, missing("encuesta", "estado")
	}
	s := &entity.Survey{
		ID:          d.EncuestaID,
		CompanyID:   d.EmpresaID,
		CreatorID:   d.UsuarioCreadorID,
		Title:       d.Titulo,
		Description: d.Descripcion,
		CreatedAt:   d.FechaCreacion,
		ValidFrom:   d.FechaInicioVigencia,
		ValidTo:     d.FechaFinVigencia,
		Status:      d.Estado,
		LongLink:    d.EnlaceLargo,
		ShortLink:   d.EnlaceCorto,
		Questions:   make([]entity.Question, 0, len(d.Preguntas)),
	}
	for _, qd := range d.Preguntas {
		if qd.PreguntaID == 0 || qd.TipoPreguntaID == 0 {
			return nil, missing("encuesta", "preguntaID/tipoPreguntaID")
		}
		q := entity.Question{
			ID:       qd.PreguntaID,
			SurveyID: d.EncuestaID,
			TypeID:   qd.TipoPreguntaID,
			Text:     qd.TextoPregunta,
			Order:    qd.Orden,
			Required: qd.EsObligatoria,
		}
		for _, od := range qd.Opciones {
			if od.OpcionID == 0 {
				return nil, missing("encuesta", "opcionID")
			}
			q.Options = append(q.Options, entity.AnswerOption{
				ID: od.OpcionID, QuestionID: qd.PreguntaID, Text: od.TextoOpcion, Value: od.Valor, Order: od.Orden,
			})
		}
		s.Questions = append(s.Questions, q)
	}
	return s, nil
}

func encodeResponse(r *entity.SurveyResponse) ([]byte, error) {
	d := responseDoc{
		EncuestaRespondidaID: r.ID,
		EncuestaID:           r.SurveyID,
		IdentificadorUsuario: r.Respondent,
		Token:                r.Token,
		FechaRespuesta:       r.SubmittedAt,
		Respuestas:           make([]answerDoc, 0, len(r.Answers)),
	}
	for _, a := range r.Answers {
		d.Respuestas = append(d.Respuestas, answerDoc{
			RespuestaID: a.ID, PreguntaID: a.QuestionID, OpcionID: a.OptionID, TextoRespuesta: a.Text,
		})
	}
	return json.Marshal(d)
}

func decodeResponse(data []byte) (*entity.SurveyResponse, error) {
	var d responseDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("redis: documento respuesta: %w", err)
	}
	switch {
	case d.EncuestaRespondidaID == 0:
		return nil, missing("encuesta_respondida", "encuestaRespondidaID")
	case d.EncuestaID == 0:
		return nil, missing("encuesta_respondida", "encuestaID")
	case d.Token == "":
		return nil, missing("encuesta_respondida", "token")
	}
	r := &entity.SurveyResponse{
		ID:          d.EncuestaRespondidaID,
		SurveyID:    d.EncuestaID,
		Respondent:  d.IdentificadorUsuario,
		Token:       d.Token,
		SubmittedAt: d.FechaRespuesta,
	}
	for _, a := range d.Respuestas {
		if a.PreguntaID == 0 {
			return nil, missing("encuesta_respondida", "preguntaID")
		}
		r.Answers = append(r.Answers, entity.Answer{
			ID: a.RespuestaID, ResponseID: d.EncuestaRespondidaID, QuestionID: a.PreguntaID,
			OptionID: a.OpcionID, Text: a.TextoRespuesta,
		})
	}
	return r, nil
}
