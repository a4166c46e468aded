package entity

import "time"

// Empresa representa una organización/tenant del sistema. Es la frontera de
// aislamiento: los roles y la visibilidad de usuarios nunca la cruzan.
// Se desactiva (Estado=false) en lugar de borrarse.
type Empresa struct {
	IDEmpresa     int64
	Nombre        string
	RazonSocial   string
	NIT           string // NIT colombiano (con o sin dígito de verificación)
	Telefono      string
	Email         string
	Direccion     string
	Estado        bool
	FechaCreacion time.Time
}
