package entity

// Permiso es un par (accion, recurso) global, no ligado a ninguna empresa.
// El par es único en todo el sistema.
type Permiso struct {
	IDPermiso int64
	Accion    string
	Recurso   string
}
