package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user := &models.User{Email: "test@example.com", Password: "testpassword1234"}
	require.NoError(t, user.HashPassword())
	require.NoError(t, svc.CreateUser(user))

	stored, err := svc.GetUserByEmail("test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", stored.Email)
	assert.True(t, stored.CheckPassword("testpassword1234"))
	assert.True(t, stored.IsActive)
	assert.False(t, stored.IsStaff)
	assert.False(t, stored.IsSuperuser)
}

func TestCreateUserNormalizesEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	// Domain is lowercased, the local part is preserved as given.
	testCases := []struct {
		email    string
		expected string
	}{
		{"test1@EXAMPLE.COM", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
	}

	for _, tt := range testCases {
		t.Run(tt.email, func(t *testing.T) {
			user := &models.User{Email: tt.email, Password: "test123"}
			require.NoError(t, svc.CreateUser(user))
			assert.Equal(t, tt.expected, user.Email)
		})
	}
}

func TestCreateUserWithoutEmailFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	err := svc.CreateUser(&models.User{Password: "test123"})
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestCreateUserDuplicateEmailFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	require.NoError(t, svc.CreateUser(&models.User{Email: "test@example.com", Password: "x"}))

	err := svc.CreateUser(&models.User{Email: "test@EXAMPLE.com", Password: "y"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestCreateSuperuser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.CreateSuperuser("admin@example.com", "test123")
	require.NoError(t, err)

	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsStaff)
	assert.True(t, user.CheckPassword("test123"))
}

func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user := &models.User{Email: "test@example.com", Password: "old"}
	require.NoError(t, user.HashPassword())
	require.NoError(t, svc.CreateUser(user))

	name := "Updated name"
	password := "newpassword"
	updated, err := svc.UpdateUser(user.ID, UserUpdate{Name: &name, Password: &password})
	require.NoError(t, err)

	assert.Equal(t, "Updated name", updated.Name)

	stored, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("newpassword"))
	assert.Equal(t, "test@example.com", stored.Email)
}

func TestGetUserByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.GetUserByID(42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
