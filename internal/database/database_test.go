package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questionbank/internal/domain"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost:5432/papers"))
	assert.True(t, IsPostgres("postgresql://localhost/papers"))
	assert.False(t, IsPostgres("questionbank.db"))
	assert.False(t, IsPostgres("file::memory:?cache=shared"))
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := Connect(dsn)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, table := range []string{"branches", "semesters", "exam_types", "papers", "auth_users", "auth_sessions", "admin_users"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	require.NoError(t, db.Create(&domain.Branch{Name: "Computer Science", Code: "CSE"}).Error)
	err = db.Create(&domain.Branch{Name: "Duplicate", Code: "CSE"}).Error
	assert.Error(t, err, "branch code is unique")
}
