package entity

import "time"

// Company representa una organización/tenant del sistema.
type Company struct {
	ID           int64
	Name         string
	TaxID        string // NIT, único entre empresas
	RegisteredAt time.Time
}

// UnknownCompanyName se muestra cuando una referencia no resuelve a ninguna empresa.
const UnknownCompanyName = "Empresa Desconocida"
