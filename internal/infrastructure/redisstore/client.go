// Package redisstore backend clave-valor sobre go-redis.
//
// Cada entidad es un documento JSON (nombres de campo en camelCase) bajo <entidad>:<id>.
// Los conjuntos empresas, usuarios y encuestas indexan los IDs; los índices únicos
// (empresa:nit:<nit>, usuario:email:<email>, encuesta:enlace:<corto>) se reservan con SETNX
// y los IDs salen de contadores counter:<entidad>. empresa:<id>:usuarios y
// empresa:<id>:encuestas indexan los dependientes de cada empresa.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
	"github.com/jhoicas/Encuestas-api/pkg/config"
	"github.com/redis/go-redis/v9"
)

const (
	setCompanies = "empresas"
	setUsers     = "usuarios"
	setSurveys   = "encuestas"

	keyQuestionTypes = "tipos_pregunta"
)

func companyKey(id int64) string { return "empresa:" + strconv.FormatInt(id, 10) }
func companyUsersKey(id int64) string { return companyKey(id) + ":usuarios" }
func companySurveysKey(id int64) string { return companyKey(id) + ":encuestas" }
func userKey(id int64) string { return "usuario:" + strconv.FormatInt(id, 10) }
func surveyKey(id int64) string { return "encuesta:" + strconv.FormatInt(id, 10) }
func responseKey(id int64) string { return "encuesta_respondida:" + strconv.FormatInt(id, 10) }
func surveyResponsesKey(id int64) string { return surveyKey(id) + ":respuestas" }
func taxIDKey(nit string) string { return "empresa:nit:" + nit }
func emailKey(email string) string { return "usuario:email:" + strings.ToLower(strings.TrimSpace(email)) }
func shortLinkKey(short string) string { return "encuesta:enlace:" + short }
func counterKey(name string) string { return "counter:" + name }

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// NewRepositories construye los repositorios del backend clave-valor.
func NewRepositories(rdb *redis.Client, links survey.LinkBuilder) repository.Repositories {
	return repository.Repositories{
		Companies:     NewCompanyRepository(rdb),
		Users:         NewUserRepository(rdb),
		Surveys:       NewSurveyRepository(rdb, links),
		QuestionTypes: NewQuestionTypeRepository(rdb),
		Responses:     NewResponseRepository(rdb),
	}
}

func nextID(ctx context.Context, rdb redis.Cmdable, name string) (int64, error) {
	id, err := rdb.Incr(ctx, counterKey(name)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: contador %s: %w", name, err)
	}
	return id, nil
}

// nextIDs reserva n IDs consecutivos y devuelve el primero.
func nextIDs(ctx context.Context, rdb redis.Cmdable, name string, n int) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	last, err := rdb.IncrBy(ctx, counterKey(name), int64(n)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: contador %s: %w", name, err)
	}
	return last - int64(n) + 1, nil
}

// getDoc devuelve nil, nil si la clave no existe.
func getDoc(ctx context.Context, rdb redis.Cmdable, key string) ([]byte, error) {
	data, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return data, nil
}

// loadAll lee todos los documentos cuyos IDs están en setKey. Los IDs huérfanos se ignoran.
func loadAll(ctx context.Context, rdb redis.Cmdable, setKey string, key func(int64) string) ([][]byte, error) {
	members, err := rdb.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: smembers %s: %w", setKey, err)
	}
	if len(members) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redis: id inválido %q en %s", m, setKey)
		}
		keys = append(keys, key(id))
	}
	values, err := rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: mget %s: %w", setKey, err)
	}
	out := make([][]byte, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, []byte(s))
		}
	}
	return out, nil
}

// getID lee un índice único (valor = ID). Devuelve 0 si no existe.
func getID(ctx context.Context, rdb redis.Cmdable, key string) (int64, error) {
	id, err := rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return id, nil
}

// reserve toma el índice único key para id. Devuelve false si ya pertenece a otro ID.
func reserve(ctx context.Context, rdb redis.Cmdable, key string, id int64) (bool, error) {
	ok, err := rdb.SetNX(ctx, key, id, 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis: setnx %s: %w", key, err)
	}
	if ok {
		return true, nil
	}
	owner, err := getID(ctx, rdb, key)
	if err != nil {
		return false, err
	}
	return owner == id, nil
}

func exists(ctx context.Context, rdb redis.Cmdable, key string) (bool, error) {
	n, err := rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis: exists %s: %w", key, err)
	}
	return n > 0, nil
}

// checkCompany exige que la empresa exista.
func checkCompany(ctx context.Context, rdb redis.Cmdable, companyID int64) error {
	ok, err := exists(ctx, rdb, companyKey(companyID))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: la empresa no existe", domain.ErrConstraint)
	}
	return nil
}

// txErr traduce el abort de un WATCH a domain.ErrConflict.
func txErr(err error) error {
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: los datos cambiaron durante la operación, reintente", domain.ErrConflict)
	}
	return err
}
