package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Auth-api/internal/domain/authz"
	"github.com/jhoicas/Auth-api/internal/domain/entity"
)

func usuario(esDueno bool) *entity.Usuario {
	return &entity.Usuario{IDUsuario: 1, Nombre: "Ana", EsDueno: esDueno, Estado: true, IDEmpresa: 10}
}

func empresa() *entity.Empresa {
	return &entity.Empresa{IDEmpresa: 10, Nombre: "Acme", Estado: true}
}

// El dueño pasa cualquier verificación, incluso sin roles ni permisos asignados.
func TestPuede_DuenoPasaSiempre(t *testing.T) {
	p := authz.NewPrincipal(usuario(true), empresa(), nil, nil)

	assert.True(t, p.Puede("read", "empresas"))
	assert.True(t, p.Puede("delete", "usuarios"))
	assert.True(t, p.Puede("accion-inventada", "recurso-inventado"),
		"el bypass del dueño no depende del catálogo de permisos")
}

// Un usuario sin roles no puede hacer nada.
func TestPuede_SinRolesDeniegaTodo(t *testing.T) {
	p := authz.NewPrincipal(usuario(false), empresa(), nil, nil)

	assert.False(t, p.Puede("read", "empresas"))
	assert.False(t, p.Puede("create", "roles"))
	assert.Empty(t, p.Permisos, "conjunto de roles vacío implica permisos vacíos, no error")
}

// Coincidencia exacta de accion y recurso; nada de comodines ni prefijos.
func TestPuede_CoincidenciaExacta(t *testing.T) {
	permisos := []*entity.Permiso{
		{IDPermiso: 1, Accion: "read", Recurso: "empresas"},
	}
	p := authz.NewPrincipal(usuario(false), empresa(), []*entity.Rol{{IDRol: 5, Nombre: "consulta", IDEmpresa: 10}}, permisos)

	assert.True(t, p.Puede("read", "empresas"))
	assert.False(t, p.Puede("delete", "empresas"), "otra acción sobre el mismo recurso se deniega")
	assert.False(t, p.Puede("read", "usuarios"), "la misma acción sobre otro recurso se deniega")
	assert.False(t, p.Puede("rea", "empresas"), "sin coincidencia por prefijo")
}

// Un permiso alcanzable por dos roles aparece una sola vez en el principal.
func TestNewPrincipal_DeduplicaPorIDPermiso(t *testing.T) {
	// Simula el resultado de cargar permisos para dos roles que comparten el permiso 7.
	// Las dos cargas producen structs distintos con el mismo IDPermiso.
	permisos := []*entity.Permiso{
		{IDPermiso: 7, Accion: "read", Recurso: "roles"},
		{IDPermiso: 9, Accion: "update", Recurso: "roles"},
		{IDPermiso: 7, Accion: "read", Recurso: "roles"},
	}
	p := authz.NewPrincipal(usuario(false), empresa(), nil, permisos)

	require.Len(t, p.Permisos, 2)
	ids := []int64{p.Permisos[0].IDPermiso, p.Permisos[1].IDPermiso}
	assert.ElementsMatch(t, []int64{7, 9}, ids)
	assert.True(t, p.Puede("read", "roles"))
}

// Escenario del modelo: U (no dueño) con rol R que tiene ("read","empresas").
func TestPuede_EscenarioLecturaEmpresas(t *testing.T) {
	rol := &entity.Rol{IDRol: 3, Nombre: "auditor", IDEmpresa: 10}
	permisos := []*entity.Permiso{{IDPermiso: 2, Accion: "read", Recurso: "empresas"}}
	p := authz.NewPrincipal(usuario(false), empresa(), []*entity.Rol{rol}, permisos)

	assert.True(t, p.Puede("read", "empresas"))
	assert.False(t, p.Puede("delete", "empresas"))
}

func TestEsDueno(t *testing.T) {
	assert.True(t, authz.NewPrincipal(usuario(true), empresa(), nil, nil).EsDueno())
	assert.False(t, authz.NewPrincipal(usuario(false), empresa(), nil, nil).EsDueno())
}
