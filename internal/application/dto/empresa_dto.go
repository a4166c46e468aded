package dto

import "time"

// EmpresaResponse salida de una empresa.
type EmpresaResponse struct {
	IDEmpresa     int64     `json:"id_empresa"`
	Nombre        string    `json:"nombre"`
	RazonSocial   string    `json:"razon_social"`
	NIT           string    `json:"nit"`
	Telefono      string    `json:"telefono,omitempty"`
	Email         string    `json:"email,omitempty"`
	Direccion     string    `json:"direccion,omitempty"`
	Estado        bool      `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// UpdateEmpresaRequest actualización parcial: solo se tocan los campos presentes.
type UpdateEmpresaRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=1,max=30"`
	RazonSocial *string `json:"razon_social" validate:"omitempty,min=1,max=20"`
	NIT         *string `json:"nit" validate:"omitempty,min=1,max=20"`
	Telefono    *string `json:"telefono" validate:"omitempty,max=15"`
	Email       *string `json:"email" validate:"omitempty,email,max=50"`
	Direccion   *string `json:"direccion" validate:"omitempty,max=300"`
	Estado      *bool   `json:"estado"`
}
