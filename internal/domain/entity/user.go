package entity

// Roles válidos para User. El rol restringe la edición de catálogo y la
// gestión de usuarios; no restringe el registro de conteos.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User representa una cuenta del sistema (la credencial vive en el remote store).
type User struct {
	ID    string
	Name  string
	Email string
	Role  string // ADMIN, STAFF
}

// IsAdmin indica si el usuario puede editar catálogo y gestionar cuentas.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
