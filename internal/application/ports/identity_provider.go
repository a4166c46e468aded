package ports

import "context"

// Credenciales son los tokens emitidos por el proveedor tras un login.
type Credenciales struct {
	AccessToken  string
	RefreshToken string
	AuthUID      string
}

// IdentityProvider es el puerto hacia el proveedor de identidad externo
// (Supabase Auth/GoTrue u otro compatible). El core solo depende de esta
// interfaz; los tests usan un doble que la implementa.
//
// Contrato de errores:
//   - rechazo de la credencial          -> domain.ErrCredencialInvalida
//   - timeout o proveedor caído (retry) -> domain.ErrProveedorNoDisponible
type IdentityProvider interface {
	// Validate verifica el token opaco y devuelve la identidad externa estable.
	Validate(ctx context.Context, accessToken string) (authUID string, err error)

	// SignIn autentica email/password y devuelve los tokens de sesión.
	SignIn(ctx context.Context, email, password string) (*Credenciales, error)

	// SignOut revoca la sesión en el proveedor. Best effort: el caller puede
	// ignorar el error porque no se rastrea revocación local.
	SignOut(ctx context.Context, accessToken string) error

	// CreateUser da de alta el usuario en el proveedor y devuelve su authUID.
	CreateUser(ctx context.Context, email, password string) (authUID string, err error)

	// UpdateUserEmail cambia el email de la cuenta en el proveedor.
	UpdateUserEmail(ctx context.Context, authUID, email string) error

	// FindByEmail consulta si ya existe una cuenta con ese email.
	// Reemplaza el escaneo de la lista completa de usuarios: la intención es
	// la verificación de unicidad, no el mecanismo de listado.
	FindByEmail(ctx context.Context, email string) (authUID string, found bool, err error)
}
