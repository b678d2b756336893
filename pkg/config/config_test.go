package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "demo123", cfg.Auth.DefaultPassword)
	assert.Equal(t, "https://encuestas.empresa.com", cfg.Public.BaseURL)
	assert.True(t, cfg.DB.Migrate)
}

func TestFromViper_Sobrescribe(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "REDIS")
	v.Set("HTTP_PORT", "9090")
	v.Set("PUBLIC_BASE_URL", "https://ejemplo.co/")
	v.Set("REDIS_DB", 3)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://ejemplo.co", cfg.Public.BaseURL, "la barra final se recorta")
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_SecretObligatorioEnProduccion(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")

	_, err := fromViper(v)
	assert.Error(t, err)

	v.Set("JWT_SECRET", "s3cr3t")
	_, err = fromViper(v)
	assert.NoError(t, err)
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "encuestas", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/encuestas?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
