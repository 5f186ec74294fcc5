// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"medialane/internal/database"
	"medialane/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// NewTestDB opens a private in-memory SQLite database with every persistent
// model migrated. Each call gets its own database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbCounter.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: database.NewGormLogger(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Password is the plaintext password of every user created by CreateUser.
const Password = "Passw0rd"

var passwordHash = func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}()

// CreateUser inserts an active, logged-in user with role.
func CreateUser(t *testing.T, db *gorm.DB, userName string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		UserName:   userName,
		Password:   passwordHash,
		Role:       role,
		Active:     true,
		IsLoggedIn: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateCategory inserts a category.
func CreateCategory(t *testing.T, db *gorm.DB, name models.CategoryName) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}
