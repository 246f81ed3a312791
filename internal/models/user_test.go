package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	user := &User{Email: "test@example.com", Password: "testpassword1234"}
	require.NoError(t, user.HashPassword())

	assert.NotEqual(t, "testpassword1234", user.Password)
	assert.True(t, user.CheckPassword("testpassword1234"))
	assert.False(t, user.CheckPassword("wrongpassword"))
}

func TestPasswordNeverSerialized(t *testing.T) {
	user := &User{Email: "test@example.com", Password: "secret"}
	require.NoError(t, user.HashPassword())

	payload, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), user.Password)
}
