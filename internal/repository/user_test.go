package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"medialane/internal/models"
	"medialane/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_FindSession(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		mockBehavior func()
		expectUser   bool
		expectError  bool
	}{
		{
			name: "Success",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "user_name", "role", "is_logged_in"}).
					AddRow(7, "alice", "VIEWER_CLIENT", true)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1 AND user_name = $2`)).
					WithArgs(7, "alice", 1).
					WillReturnRows(rows)
			},
			expectUser: true,
		},
		{
			name: "Not Found",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1 AND user_name = $2`)).
					WithArgs(7, "alice", 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
		},
		{
			name: "Database Error",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1 AND user_name = $2`)).
					WithArgs(7, "alice", 1).
					WillReturnError(errors.New("connection timeout"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.FindSession(ctx, 7, "alice")

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectUser {
				require.NotNil(t, user)
				assert.Equal(t, "alice", user.UserName)
				assert.Equal(t, models.RoleViewerClient, user.Role)
			} else {
				assert.Nil(t, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{UserName: "dup", Password: "x", Role: models.RoleViewerClient, Active: true}))
	err := repo.Create(ctx, &models.User{UserName: "dup", Password: "x", Role: models.RoleViewerClient, Active: true})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepository_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, "viewer_one", models.RoleViewerClient)
	testutil.CreateUser(t, db, "viewer_two", models.RoleViewerClient)
	admin := testutil.CreateUser(t, db, "admin_one", models.RoleAdmin)
	require.NoError(t, repo.SetActive(ctx, admin.ID, false))

	users, total, err := repo.List(ctx, UserFilter{Role: models.RoleViewerClient}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	users, total, err = repo.List(ctx, UserFilter{Status: StatusInactive}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "admin_one", users[0].UserName)

	users, total, err = repo.List(ctx, UserFilter{Search: "TWO"}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "viewer_two", users[0].UserName)

	users, total, err = repo.List(ctx, UserFilter{}, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, users, 1)
}

func TestUserRepository_SetActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "blockme", models.RoleViewerClient)

	assert.ErrorIs(t, repo.SetActive(ctx, user.ID, true), ErrNoChange)

	require.NoError(t, repo.SetActive(ctx, user.ID, false))
	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.False(t, stored.IsLoggedIn, "blocking ends the session")

	assert.ErrorIs(t, repo.SetActive(ctx, user.ID, false), ErrNoChange)
	assert.ErrorIs(t, repo.SetActive(ctx, 9999, false), ErrNotFound)
}

func TestUserRepository_Lookups(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	email := "someone@example.com"
	user := &models.User{UserName: "someone", Email: &email, Password: "x", Role: models.RoleAdsClient, Active: true}
	require.NoError(t, repo.Create(ctx, user))

	byName, err := repo.GetByUserName(ctx, "someone")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "SOMEONE@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	missing, err := repo.GetByUserName(ctx, "nobody")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	n, err := repo.CountByRole(ctx, models.RoleAdsClient)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, repo.Delete(ctx, user.ID))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), ErrNotFound)
}
