// Package authz contiene el principal autenticado y el motor de decisión de
// permisos. El motor es puro: nunca toca almacenamiento y nunca falla.
package authz

import "github.com/jhoicas/Auth-api/internal/domain/entity"

// Principal es el paquete (usuario, empresa, roles, permisos) resuelto para
// una petición autenticada. Es inmutable durante el resto de la petición.
type Principal struct {
	Usuario  *entity.Usuario
	Empresa  *entity.Empresa
	Roles    []*entity.Rol
	Permisos []*entity.Permiso

	// Índice (accion, recurso) -> true para búsqueda exacta O(1).
	indice map[parAccionRecurso]bool
}

type parAccionRecurso struct {
	accion  string
	recurso string
}

// NewPrincipal construye el principal deduplicando permisos por IDPermiso:
// un permiso alcanzable por dos roles aparece una sola vez.
func NewPrincipal(usuario *entity.Usuario, empresa *entity.Empresa, roles []*entity.Rol, permisos []*entity.Permiso) *Principal {
	vistos := make(map[int64]bool, len(permisos))
	unicos := make([]*entity.Permiso, 0, len(permisos))
	indice := make(map[parAccionRecurso]bool, len(permisos))
	for _, p := range permisos {
		if p == nil || vistos[p.IDPermiso] {
			continue
		}
		vistos[p.IDPermiso] = true
		unicos = append(unicos, p)
		indice[parAccionRecurso{accion: p.Accion, recurso: p.Recurso}] = true
	}
	return &Principal{
		Usuario:  usuario,
		Empresa:  empresa,
		Roles:    roles,
		Permisos: unicos,
		indice:   indice,
	}
}

// Puede decide si el principal puede ejecutar accion sobre recurso.
//
// Orden de la regla:
//  1. El dueño pasa siempre, sin consultar el conjunto de permisos.
//  2. Si no, permite solo con coincidencia exacta de accion y recurso
//     (sin comodines, sin jerarquías, sin prefijos).
//  3. Si no, deniega.
func (p *Principal) Puede(accion, recurso string) bool {
	if p.Usuario != nil && p.Usuario.EsDueno {
		return true
	}
	return p.indice[parAccionRecurso{accion: accion, recurso: recurso}]
}

// EsDueno informa si el usuario del principal es dueño de su empresa.
func (p *Principal) EsDueno() bool {
	return p.Usuario != nil && p.Usuario.EsDueno
}
