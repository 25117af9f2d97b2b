package auth

import (
	"crypto/subtle"

	"wemender/entity"
)

// AdminGate checks the shared admin password. An empty configured password
// disables admin login entirely.
type AdminGate struct {
	password string
}

func NewAdminGate(password string) AdminGate {
	return AdminGate{password: password}
}

func (g AdminGate) Check(password string) error {
	if password == "" {
		return entity.ErrMissingField
	}
	if g.password == "" {
		return entity.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) != 1 {
		return entity.ErrInvalidCredentials
	}
	return nil
}
