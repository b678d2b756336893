// Package lookup resuelve referencias entre entidades para mostrarlas en listados.
package lookup

import (
	"context"
	"fmt"

	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
)

// CompanyNames caché de id de empresa -> nombre, válida para una petición.
type CompanyNames struct {
	names map[int64]string
}

// LoadCompanyNames construye el caché con un único List del repositorio.
func LoadCompanyNames(ctx context.Context, repo repository.CompanyRepository) (*CompanyNames, error) {
	list, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup empresas: %w", err)
	}
	return NewCompanyNames(list), nil
}

// NewCompanyNames construye el caché a partir de empresas ya cargadas.
func NewCompanyNames(list []*entity.Company) *CompanyNames {
	names := make(map[int64]string, len(list))
	for _, c := range list {
		names[c.ID] = c.Name
	}
	return &CompanyNames{names: names}
}

// Name devuelve el nombre de la empresa o "Empresa Desconocida".
func (n *CompanyNames) Name(id int64) string {
	if n != nil {
		if name, ok := n.names[id]; ok {
			return name
		}
	}
	return entity.UnknownCompanyName
}
