package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/pkg/config"
	"github.com/jhoicas/Encuestas-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite_AtomicHaceRollback(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverSQLite}, SQLite: config.SQLiteConfig{Path: ":memory:"}}
	s, err := Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	boom := errors.New("boom")
	err = s.Atomic(ctx, func(repos repository.Repositories) error {
		require.NoError(t, repos.Companies.Create(ctx, &entity.Company{Name: "A", TaxID: "1", RegisteredAt: time.Now().UTC()}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := s.Repos.Companies.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_Redis_CargaTipos(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverRedis}, Redis: config.RedisConfig{Addr: mr.Addr()}}
	s, err := Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	types, err := s.Repos.QuestionTypes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 6)
	assert.True(t, mr.Exists("tipos_pregunta"))
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "mongo"}}, logger.Nop())
	assert.Error(t, err)
}
