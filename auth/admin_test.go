package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wemender/auth"
	"wemender/entity"
)

func TestAdminGate(t *testing.T) {
	gate := auth.NewAdminGate("titok")

	assert.NoError(t, gate.Check("titok"))
	assert.ErrorIs(t, gate.Check("Titok"), entity.ErrInvalidCredentials)
	assert.ErrorIs(t, gate.Check("titok "), entity.ErrInvalidCredentials)
	assert.ErrorIs(t, gate.Check(""), entity.ErrMissingField)
}

func TestAdminGate_disabled(t *testing.T) {
	gate := auth.NewAdminGate("")

	assert.ErrorIs(t, gate.Check("anything"), entity.ErrInvalidCredentials)
	assert.ErrorIs(t, gate.Check(""), entity.ErrMissingField)
}
