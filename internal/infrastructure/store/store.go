// Package store abre el backend de persistencia elegido por STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
	"github.com/jhoicas/Encuestas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Encuestas-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/Encuestas-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Encuestas-api/pkg/config"
	"github.com/jhoicas/Encuestas-api/pkg/logger"
	"gorm.io/gorm"
)

// AtomicFunc ejecuta fn con repositorios atados a una transacción.
type AtomicFunc func(ctx context.Context, fn func(repos repository.Repositories) error) error

// Store repositorios abiertos más su cierre.
type Store struct {
	Driver string
	Repos  repository.Repositories
	// Atomic agrupa varias escrituras; en redis cada repo ya escribe con MULTI/EXEC
	// y fn recibe los mismos repositorios.
	Atomic AtomicFunc
	close  func() error
}

// Close libera conexiones del backend.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open conecta el backend configurado. Postgres aplica las migraciones si DB_MIGRATE=true;
// redis carga los tipos de pregunta; sqlite migra con gorm al abrir.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	links := survey.LinkBuilder{BaseURL: cfg.Public.BaseURL}

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return &Store{
			Driver: cfg.Store.Driver,
			Repos:  postgres.NewRepositories(pool, links),
			Atomic: postgres.NewTxRunner(pool, links).Run,
			close:  func() error { pool.Close(); return nil },
		}, nil

	case config.DriverRedis:
		rdb, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		if err := redisstore.SeedQuestionTypes(ctx, rdb); err != nil {
			_ = rdb.Close()
			return nil, err
		}
		repos := redisstore.NewRepositories(rdb, links)
		return &Store{
			Driver: cfg.Store.Driver,
			Repos:  repos,
			Atomic: func(_ context.Context, fn func(repository.Repositories) error) error { return fn(repos) },
			close:  rdb.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver: cfg.Store.Driver,
			Repos:  sqlite.NewRepositories(db, links),
			Atomic: func(ctx context.Context, fn func(repository.Repositories) error) error {
				return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
					return fn(sqlite.NewRepositories(tx, links))
				})
			},
			close: func() error { return sqlite.Close(db) },
		}, nil
	}
	return nil, fmt.Errorf("store: driver desconocido %q", cfg.Store.Driver)
}
