package repository

import (
	"context"
	"errors"
	"testing"

	"mayz/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "enabled"}).
					AddRow(1, "testuser", "test@example.com", true)
				mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "testuser", Email: "test@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.NewNotFoundError("User", tt.userID))
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Username, user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs(1, 1).
		WillReturnError(errors.New("connection timeout"))

	user, err := repo.GetByID(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername_Absent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("ghost", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByUsername(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_Absent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("ghost@example.com", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "alice", Email: "alice@example.com", Password: "x", Enabled: true}
	require.NoError(t, repo.Create(ctx, first))

	dup := &models.User{Username: "alice", Email: "other@example.com", Password: "x", Enabled: true}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.NewConflictError(""))
}

func TestUserRepository_Update(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")

	err := repo.Update(ctx, user.ID, map[string]interface{}{"nickname": "Allie"})
	require.NoError(t, err)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, "Allie", got.Nickname)
	// Untouched columns survive a partial update.
	assert.Equal(t, "not-a-real-hash", got.Password)
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)

	err := repo.Update(context.Background(), 404, map[string]interface{}{"nickname": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.NewNotFoundError("User", 404))
}

func TestUserRepository_Update_UniqueViolation(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	err := repo.Update(ctx, bob.ID, map[string]interface{}{"username": "alice"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.NewConflictError(""))
}

func TestUserRepository_Delete_Cascades(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	aliceMay := seedMay(t, db, alice.ID, "from alice")
	bobMay := seedMay(t, db, bob.ID, "from bob")

	// Alice voted on Bob's may, Bob voted on Alice's.
	require.NoError(t, db.Create(&models.Vote{UserID: alice.ID, MayID: bobMay.ID, VoteType: models.VoteUp}).Error)
	require.NoError(t, db.Create(&models.Vote{UserID: bob.ID, MayID: aliceMay.ID, VoteType: models.VoteUp}).Error)

	require.NoError(t, repo.Delete(ctx, alice.ID))

	var users, mayz, votes int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.May{}).Count(&mayz)
	db.Model(&models.Vote{}).Count(&votes)

	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, mayz)
	// Both alice's vote and the vote on her may are gone.
	assert.EqualValues(t, 0, votes)
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)

	err := repo.Delete(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.NewNotFoundError("User", 404))
}

func TestUserRepository_List(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedUser(t, db, "carol")

	users, err := repo.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "carol", users[1].Username)
}

func TestUserRepository_Latest(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", latest.Username)
}

func TestUserRepository_GetByIDWithMayz(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	for _, title := range []string{"one", "two", "three"} {
		seedMay(t, db, alice.ID, title)
	}

	user, err := repo.GetByIDWithMayz(ctx, alice.ID, 2)
	require.NoError(t, err)
	assert.Len(t, user.Mayz, 2)
}
