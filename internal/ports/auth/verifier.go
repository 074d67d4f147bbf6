package auth

import "context"

// AuthVerifier valida un token Bearer. Un token inactivo o desconocido es un error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
