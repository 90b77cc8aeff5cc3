package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := hashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotContains(t, hash, "correct horse")

	assert.NoError(t, verifyPassword(hash, "correct horse battery staple"))
	assert.ErrorIs(t, verifyPassword(hash, "wrong password"), ErrInvalidCredentials)
}

func TestPasswordHashUniqueSalt(t *testing.T) {
	first, err := hashPassword("secret")
	require.NoError(t, err)
	second, err := hashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordBadFormat(t *testing.T) {
	assert.Error(t, verifyPassword("not-a-hash", "secret"))
	assert.Error(t, verifyPassword("zz$zz", "secret"))
}

func TestRegisterInputValidate(t *testing.T) {
	valid := RegisterInput{
		Username: "jane",
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret123",
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.Email = ""
	assert.Error(t, missing.Validate())
}
