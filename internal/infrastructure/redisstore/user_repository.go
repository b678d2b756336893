package redisstore

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios como documentos usuario:<id> con índice usuario:email:<email>.
type UserRepo struct {
	rdb *redis.Client
}

// NewUserRepository construye el adaptador.
func NewUserRepository(rdb *redis.Client) *UserRepo {
	return &UserRepo{rdb: rdb}
}

// List usuarios ordenados por ID.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return listUsers(ctx, r.rdb)
}

func listUsers(ctx context.Context, rdb redis.Cmdable) ([]*entity.User, error) {
	docs, err := loadAll(ctx, rdb, setUsers, userKey)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(docs))
	for _, d := range docs {
		u, err := decodeUser(d)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	data, err := getDoc(ctx, r.rdb, userKey(id))
	if err != nil || data == nil {
		return nil, err
	}
	return decodeUser(data)
}

// GetByEmail obtiene un usuario por email sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	id, err := getID(ctx, r.rdb, emailKey(email))
	if err != nil || id == 0 {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Create reserva el email, asigna ID y guarda el documento. El WATCH sobre la
// empresa evita crear el usuario si la empresa se borra en paralelo.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := checkCompany(ctx, r.rdb, user.CompanyID); err != nil {
		return err
	}
	id, err := nextID(ctx, r.rdb, "usuario")
	if err != nil {
		return err
	}
	ok, err := reserve(ctx, r.rdb, emailKey(user.Email), id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrEmailExists
	}

	u := *user
	u.ID, u.Email = id, strings.ToLower(user.Email)
	data, err := encodeUser(&u)
	if err != nil {
		return err
	}
	err = r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		if err := checkCompany(ctx, tx, u.CompanyID); err != nil {
			return err
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, userKey(id), data, 0)
			pipe.SAdd(ctx, setUsers, id)
			pipe.SAdd(ctx, companyUsersKey(u.CompanyID), id)
			return nil
		})
		return err
	}, companyKey(u.CompanyID))
	if err != nil {
		_ = r.rdb.Del(ctx, emailKey(user.Email)).Err()
		return txErr(err)
	}
	user.ID = id
	return nil
}

// Update reemplaza los campos editables, mueve el índice de email si cambia y
// traslada el ID entre empresa:<id>:usuarios si cambia la empresa.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	current, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	if user.CompanyID != current.CompanyID {
		if err := checkCompany(ctx, r.rdb, user.CompanyID); err != nil {
			return err
		}
	}
	oldKey, newKey := emailKey(current.Email), emailKey(user.Email)
	if oldKey != newKey {
		ok, err := reserve(ctx, r.rdb, newKey, user.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrEmailExists
		}
	}

	u := *user
	u.Email = strings.ToLower(user.Email)
	u.CreatedAt = current.CreatedAt
	data, err := encodeUser(&u)
	if err != nil {
		return err
	}
	err = r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		if err := checkCompany(ctx, tx, u.CompanyID); err != nil {
			return err
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, userKey(u.ID), data, 0)
			if oldKey != newKey {
				pipe.Del(ctx, oldKey)
			}
			if u.CompanyID != current.CompanyID {
				pipe.SRem(ctx, companyUsersKey(current.CompanyID), u.ID)
			}
			pipe.SAdd(ctx, companyUsersKey(u.CompanyID), u.ID)
			return nil
		})
		return err
	}, companyKey(u.CompanyID))
	if err != nil {
		if oldKey != newKey {
			_ = r.rdb.Del(ctx, newKey).Err()
		}
		return txErr(err)
	}
	return nil
}

// CountByCompany número de usuarios por empresa.
func (r *UserRepo) CountByCompany(ctx context.Context) (map[int64]int, error) {
	return countUsers(ctx, r.rdb)
}

func countUsers(ctx context.Context, rdb redis.Cmdable) (map[int64]int, error) {
	users, err := listUsers(ctx, rdb)
	if err != nil {
		return nil, err
	}
	out := map[int64]int{}
	for _, u := range users {
		out[u.CompanyID]++
	}
	return out, nil
}
