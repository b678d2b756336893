// seed carga las empresas y usuarios de demostración en el almacén configurado
// (STORE_DRIVER). No hace nada si ya existen empresas.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/application/seed"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/infrastructure/store"
	"github.com/jhoicas/Encuestas-api/pkg/config"
	"github.com/jhoicas/Encuestas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("conexión al almacén")
	}
	defer st.Close()

	var res *seed.Result
	err = st.Atomic(ctx, func(repos repository.Repositories) error {
		res, err = seed.Run(ctx, repos)
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	if res.Skipped {
		log.Info().Msg("el almacén ya tiene empresas; sin cambios")
		return
	}
	log.Info().
		Int("empresas", res.Companies).
		Int("usuarios", res.Users).
		Str("password", seed.DemoPassword).
		Msg("datos de demostración cargados")
}
