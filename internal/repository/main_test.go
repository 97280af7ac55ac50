package repository

import (
	"testing"

	"mayz/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB wires GORM over sqlmock for asserting query shapes.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

// setupSqliteDB gives a real in-memory database for transactional paths
// where mocking every statement would just restate the implementation.
func setupSqliteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.May{}, &models.Vote{}))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Nickname: username,
		Password: "not-a-real-hash",
		Enabled:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedMay(t *testing.T, db *gorm.DB, userID uint, title string) *models.May {
	t.Helper()

	may := &models.May{
		Title:     title,
		Content:   "content of " + title,
		Published: true,
		UserID:    userID,
	}
	require.NoError(t, db.Create(may).Error)
	return may
}
