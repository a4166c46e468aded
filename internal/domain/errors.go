package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound = errors.New("recurso no encontrado")

	// Resolución de identidad.
	ErrCredencialInvalida    = errors.New("credencial inválida")
	ErrProveedorNoDisponible = errors.New("proveedor de identidad no disponible")
	ErrUsuarioNoEncontrado   = errors.New("usuario no encontrado")
	ErrUsuarioInactivo       = errors.New("cuenta de usuario desactivada")
	ErrEmpresaInactiva       = errors.New("empresa desactivada o inexistente")

	// Autorización.
	ErrPermisoDenegado = errors.New("permiso denegado")
	ErrSoloDueno       = errors.New("operación reservada al dueño")

	// Reglas del grafo RBAC y persistencia.
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrEmailRegistrado = errors.New("el email ya está registrado")
	ErrRolOtraEmpresa  = errors.New("el rol pertenece a otra empresa")
	ErrPermisoEnUso    = errors.New("el permiso está asignado a uno o más roles")
	ErrEsDueno         = errors.New("la cuenta del dueño no puede desactivarse por esta vía")
	ErrInvalidInput    = errors.New("entrada inválida")
)
