package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	user, err := CreateUser("Alice Example", "alice@example.com", "s3cret-pass", ROLE_ADMIN)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", user.Password)
	assert.True(t, CheckPasswordHash("s3cret-pass", user.Password))
	assert.False(t, CheckPasswordHash("wrong", user.Password))
	assert.Equal(t, STATUS_ACTIVE, user.Status)
	assert.True(t, user.IsAdmin())
}

func TestCreateUserValidation(t *testing.T) {
	_, err := CreateUser("Al", "not-an-email", "s3cret-pass", ROLE_STAFF)
	assert.Error(t, err)

	_, err = CreateUser("Alice", "alice@example.com", "short", ROLE_STAFF)
	assert.Error(t, err)
}
