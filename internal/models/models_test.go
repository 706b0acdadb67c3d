package models

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestUsernameIsUnique(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&User{Username: "alice", PasswordHash: "x"}).Error)
	err := db.Create(&User{Username: "alice", PasswordHash: "y"}).Error
	assert.Error(t, err)
}

func TestFavoritePairIsUnique(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&Favorite{UserID: 1, RecipeID: 2}).Error)
	assert.Error(t, db.Create(&Favorite{UserID: 1, RecipeID: 2}).Error)
	assert.NoError(t, db.Create(&Favorite{UserID: 1, RecipeID: 3}).Error)
	assert.NoError(t, db.Create(&Favorite{UserID: 2, RecipeID: 2}).Error)
}

func TestIdentifiersAreAssignedInOrder(t *testing.T) {
	db := setupTestDB(t)

	first := &Recipe{Title: "A"}
	second := &Recipe{Title: "B"}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.Nil(t, first.Description)
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	data, err := json.Marshal(User{ID: 1, Username: "alice", PasswordHash: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.Contains(t, string(data), `"username":"alice"`)
}

func TestTextColumnsAreUnbounded(t *testing.T) {
	for _, tc := range []struct {
		model interface{}
		field string
	}{
		{&User{}, "Username"},
		{&Recipe{}, "Title"},
		{&Recipe{}, "Ingredients"},
		{&Recipe{}, "Method"},
	} {
		s, err := schema.Parse(tc.model, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)

		field := s.LookUpField(tc.field)
		require.NotNil(t, field, tc.field)
		assert.EqualValues(t, "text", field.DataType, tc.field)
		assert.Zero(t, field.Size, tc.field)
	}
}
