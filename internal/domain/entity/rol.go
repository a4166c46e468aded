package entity

// Rol agrupa permisos dentro de una empresa. El nombre es único por empresa,
// no global. Borrar un rol elimina sus vínculos (roles_permisos y
// usuarios_roles) en la misma transacción.
type Rol struct {
	IDRol       int64
	Nombre      string
	Descripcion string
	IDEmpresa   int64
}

// RolPermiso vincula un permiso a un rol. PK compuesta (permiso, rol);
// no tiene identidad propia.
type RolPermiso struct {
	IDPermiso int64
	IDRol     int64
}

// UsuarioRol vincula un rol a un usuario. PK compuesta (usuario, rol).
// El rol debe pertenecer a la misma empresa que el usuario; eso se valida
// al asignar, no solo al consultar.
type UsuarioRol struct {
	IDUsuario int64
	IDRol     int64
}
