// Package sqlite backend embebido (gorm + SQLite sin cgo) para desarrollo local y pruebas.
// Usa el mismo esquema de tablas y columnas que el backend relacional.
package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Open abre (o crea) la base en path, migra el esquema y carga los tipos de pregunta.
// path ":memory:" crea una base efímera.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(withForeignKeys(path)), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Una sola conexión: con ":memory:" cada conexión sería una base distinta.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&companyModel{}, &userModel{}, &questionTypeModel{},
		&surveyModel{}, &questionModel{}, &optionModel{},
		&responseModel{}, &answerModel{},
	); err != nil {
		return nil, fmt.Errorf("sqlite: migrar: %w", err)
	}
	if err := seedQuestionTypes(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewRepositories construye los repositorios del backend embebido.
func NewRepositories(db *gorm.DB, links survey.LinkBuilder) repository.Repositories {
	return repository.Repositories{
		Companies:     NewCompanyRepository(db),
		Users:         NewUserRepository(db),
		Surveys:       NewSurveyRepository(db, links),
		QuestionTypes: NewQuestionTypeRepository(db),
		Responses:     NewResponseRepository(db),
	}
}

// Close cierra la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func seedQuestionTypes(db *gorm.DB) error {
	types := entity.DefaultQuestionTypes()
	rows := make([]questionTypeModel, 0, len(types))
	for _, t := range types {
		rows = append(rows, questionTypeModel{TipoPreguntaID: t.ID, NombreTipo: t.Name})
	}
	err := db.WithContext(context.Background()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("sqlite: tipos de pregunta: %w", err)
	}
	return nil
}

func withForeignKeys(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}
