package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelmate/marketplace-api/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("secret", 1)

	token, err := svc.GenerateToken("vol-1", model.UserTypeVolunteer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "vol-1", claims.UserID)
	assert.Equal(t, model.UserTypeVolunteer, claims.UserType)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 1).GenerateToken("vol-1", model.UserTypeVolunteer)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 1).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewJWTService("secret", 1).ValidateToken("not.a.token")
	assert.Error(t, err)
}
