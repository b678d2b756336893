package dto

import "time"

// CompanyRequest entrada para crear o actualizar una empresa.
type CompanyRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=200"`
	NIT    string `json:"nit" validate:"required,min=1,max=20"`
}

// CompanyResponse salida de una empresa con su número de usuarios.
type CompanyResponse struct {
	EmpresaID     int64     `json:"empresaID"`
	Nombre        string    `json:"nombre"`
	NIT           string    `json:"nit"`
	FechaRegistro time.Time `json:"fechaRegistro"`
	TotalUsuarios int       `json:"totalUsuarios"`
}

// CompanyListResponse lista de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
}
