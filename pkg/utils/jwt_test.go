package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, exp, err := svc.GenerateSessionToken("agent-1", "ada")
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "agent-1", claims.AgentID)
	assert.Equal(t, "ada", claims.Name)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a").GenerateSessionToken("agent-1", "ada")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := NewJWTService("test-secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}
