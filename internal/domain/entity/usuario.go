package entity

import "time"

// Usuario representa un principal del sistema. La identidad externa (AuthUID)
// la emite el proveedor de identidad y nunca se genera localmente.
// EsDueno se fija en la creación y no se modifica por las rutas de update.
type Usuario struct {
	IDUsuario     int64
	AuthUID       string // UUID emitido por el proveedor de identidad, único
	Nombre        string
	Apellido      string
	Email         string
	EsDueno       bool
	Estado        bool
	FechaCreacion time.Time
	IDEmpresa     int64 // FK no nula: todo usuario pertenece a exactamente una empresa
}
