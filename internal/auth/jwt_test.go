package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	v := NewTokenValidator("test-secret")

	token, err := v.IssueToken("marie", "chef_projet", time.Minute)
	require.NoError(t, err)

	claims, err := v.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "marie", claims.Subject)
	assert.Equal(t, "chef_projet", claims.Role)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewTokenValidator("secret-a").IssueToken("marie", "chef_projet", time.Minute)
	require.NoError(t, err)

	_, err = NewTokenValidator("secret-b").Validate(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	v := NewTokenValidator("test-secret")
	token, err := v.IssueToken("marie", "chef_projet", -time.Minute)
	require.NoError(t, err)

	_, err = v.Validate(token)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	_, err := NewTokenValidator("test-secret").Validate("not-a-token")
	assert.Error(t, err)
}
