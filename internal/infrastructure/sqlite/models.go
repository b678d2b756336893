package sqlite

import (
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type companyModel struct {
	EmpresaID     int64     `gorm:"column:empresaid;primaryKey;autoIncrement"`
	Nombre        string    `gorm:"column:nombre;not null"`
	NIT           string    `gorm:"column:nit;not null;uniqueIndex"`
	FechaRegistro time.Time `gorm:"column:fecharegistro;not null"`

	// Relaciones declaradas desde el padre: la FK queda en usuario y encuesta.
	Users   []userModel   `gorm:"foreignKey:EmpresaID;references:EmpresaID;constraint:OnDelete:RESTRICT"`
	Surveys []surveyModel `gorm:"foreignKey:EmpresaID;references:EmpresaID;constraint:OnDelete:RESTRICT"`
}

func (companyModel) TableName() string { return "empresa" }

type userModel struct {
	UsuarioID     int64     `gorm:"column:usuarioid;primaryKey;autoIncrement"`
	EmpresaID     int64     `gorm:"column:empresaid;not null;index"`
	Email         string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash  string    `gorm:"column:passwordhash;not null"`
	Nombre        string    `gorm:"column:nombre;not null"`
	Apellido      string    `gorm:"column:apellido;not null;default:''"`
	Rol           string    `gorm:"column:rol;not null"`
	Estado        string    `gorm:"column:estado;not null"`
	FechaCreacion time.Time `gorm:"column:fechacreacion;not null"`
}

func (userModel) TableName() string { return "usuario" }

type questionTypeModel struct {
	TipoPreguntaID int64  `gorm:"column:tipopreguntaid;primaryKey;autoIncrement:false"`
	NombreTipo     string `gorm:"column:nombretipo;not null"`
}

func (questionTypeModel) TableName() string { return "tipopregunta" }

type surveyModel struct {
	EncuestaID          int64      `gorm:"column:encuestaid;primaryKey;autoIncrement"`
	EmpresaID           int64      `gorm:"column:empresaid;not null;index"`
	UsuarioCreadorID    int64      `gorm:"column:usuariocreadorid;not null"`
	Titulo              string     `gorm:"column:titulo;not null"`
	Descripcion         string     `gorm:"column:descripcion;not null;default:''"`
	FechaCreacion       time.Time  `gorm:"column:fechacreacion;not null"`
	FechaInicioVigencia *time.Time `gorm:"column:fechainiciovigencia"`
	FechaFinVigencia    *time.Time `gorm:"column:fechafinvigencia"`
	Estado              string     `gorm:"column:estado;not null"`
	EnlaceLargo         string     `gorm:"column:enlacelargo;not null;default:''"`
	EnlaceCorto         string     `gorm:"column:enlacecorto;not null;default:'';index"`
}

func (surveyModel) TableName() string { return "encuesta" }

type questionModel struct {
	PreguntaID     int64  `gorm:"column:preguntaid;primaryKey;autoIncrement"`
	EncuestaID     int64  `gorm:"column:encuestaid;not null;index"`
	TipoPreguntaID int64  `gorm:"column:tipopreguntaid;not null"`
	TextoPregunta  string `gorm:"column:textopregunta;not null;default:''"`
	Orden          int    `gorm:"column:orden;not null"`
	EsObligatoria  bool   `gorm:"column:esobligatoria;not null;default:false"`
}

func (questionModel) TableName() string { return "pregunta" }

type optionModel struct {
	OpcionID    int64               `gorm:"column:opcionid;primaryKey;autoIncrement"`
	PreguntaID  int64               `gorm:"column:preguntaid;not null;index"`
	TextoOpcion string              `gorm:"column:textoopcion;not null;default:''"`
	Valor       decimal.NullDecimal `gorm:"column:valor;type:text"`
	Orden       int                 `gorm:"column:orden;not null"`
}

func (optionModel) TableName() string { return "opcionrespuesta" }

type responseModel struct {
	EncuestaRespondidaID int64     `gorm:"column:encuestarespondidaid;primaryKey;autoIncrement"`
	EncuestaID           int64     `gorm:"column:encuestaid;not null;index"`
	IdentificadorUsuario string    `gorm:"column:identificadorusuario;not null;default:''"`
	Token                string    `gorm:"column:token;not null;uniqueIndex"`
	FechaRespuesta       time.Time `gorm:"column:fecharespuesta;not null"`
}

func (responseModel) TableName() string { return "encuestarespondida" }

type answerModel struct {
	RespuestaID          int64   `gorm:"column:respuestaid;primaryKey;autoIncrement"`
	EncuestaRespondidaID int64   `gorm:"column:encuestarespondidaid;not null;index"`
	PreguntaID           int64   `gorm:"column:preguntaid;not null"`
	OpcionID             *int64  `gorm:"column:opcionid"`
	TextoRespuesta       *string `gorm:"column:textorespuesta"`
}

func (answerModel) TableName() string { return "respuestausuario" }

// ── adaptadores fila -> entidad ──────────────────────────────────────────────

func toCompany(m *companyModel) *entity.Company {
	return &entity.Company{ID: m.EmpresaID, Name: m.Nombre, TaxID: m.NIT, RegisteredAt: m.FechaRegistro}
}

func fromCompany(c *entity.Company) companyModel {
	return companyModel{EmpresaID: c.ID, Nombre: c.Name, NIT: c.TaxID, FechaRegistro: c.RegisteredAt}
}

func toUser(m *userModel) *entity.User {
	return &entity.User{
		ID:           m.UsuarioID,
		CompanyID:    m.EmpresaID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.Nombre,
		LastName:     m.Apellido,
		Role:         m.Rol,
		Status:       m.Estado,
		CreatedAt:    m.FechaCreacion,
	}
}

func fromUser(u *entity.User) userModel {
	return userModel{
		UsuarioID:     u.ID,
		EmpresaID:     u.CompanyID,
		Email:         strings.ToLower(u.Email),
		PasswordHash:  u.PasswordHash,
		Nombre:        u.FirstName,
		Apellido:      u.LastName,
		Rol:           u.Role,
		Estado:        u.Status,
		FechaCreacion: u.CreatedAt,
	}
}

func toSurvey(m *surveyModel) *entity.Survey {
	return &entity.Survey{
		ID:          m.EncuestaID,
		CompanyID:   m.EmpresaID,
		CreatorID:   m.UsuarioCreadorID,
		Title:       m.Titulo,
		Description: m.Descripcion,
		CreatedAt:   m.FechaCreacion,
		ValidFrom:   m.FechaInicioVigencia,
		ValidTo:     m.FechaFinVigencia,
		Status:      m.Estado,
		LongLink:    m.EnlaceLargo,
		ShortLink:   m.EnlaceCorto,
	}
}

func fromSurvey(s *entity.Survey) surveyModel {
	return surveyModel{
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
	}
}

func toOption(m *optionModel) entity.AnswerOption {
	o := entity.AnswerOption{ID: m.OpcionID, QuestionID: m.PreguntaID, Text: m.TextoOpcion, Order: m.Orden}
	if m.Valor.Valid {
		v := m.Valor.Decimal
		o.Value = &v
	}
	return o
}

func fromOption(o *entity.AnswerOption) optionModel {
	m := optionModel{OpcionID: o.ID, PreguntaID: o.QuestionID, TextoOpcion: o.Text, Orden: o.Order}
	if o.Value != nil {
		m.Valor = decimal.NullDecimal{Decimal: *o.Value, Valid: true}
	}
	return m
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
