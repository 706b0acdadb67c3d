package testhelpers

import (
	"testing"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDatabase(t *testing.T) {
	db := SetupTestDatabase(t)
	require.NotNil(t, db)

	user := &models.User{Username: "testuser", PasswordHash: "hashed_password"}
	require.NoError(t, db.Create(user).Error)
	assert.NotZero(t, user.ID)

	for _, table := range []string{"users", "recipes", "favorites"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestSetupTestDatabaseIsolated(t *testing.T) {
	first := SetupTestDatabase(t)
	second := SetupTestDatabase(t)

	require.NoError(t, first.Create(&models.Recipe{Title: "Soup"}).Error)

	var count int64
	require.NoError(t, second.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}
