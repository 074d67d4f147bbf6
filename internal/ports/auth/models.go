package auth

// Claims es la identidad del usuario de granja que hace la petición.
type Claims struct {
	UserID string
	Email  string
	Name   string
	Role   string // admin | tecnico; informativo, no se usa para autorizar
}
