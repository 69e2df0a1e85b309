package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/organization-registry/internal/models"
	"github.com/yukikurage/organization-registry/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, Migrate(db))

	for _, table := range []interface{}{&models.Organization{}, &models.Participant{}, &models.OrganizationMember{}, &models.Share{}} {
		require.True(t, db.Migrator().HasTable(table))
	}
	for _, idx := range registryIndexes {
		require.True(t, db.Migrator().HasIndex(idx.table, idx.name), idx.name)
	}

	// second run must skip existing indexes
	require.NoError(t, Migrate(db))
}

func TestPaginate(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, Migrate(db))

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Participant{OrganizationID: [32]byte{byte(i)}}).Error)
	}

	var page []models.Participant
	err := db.Scopes(Paginate(utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})).
		Order("seq").Find(&page).Error
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, byte(2), page[0].OrganizationID[0])
	require.Equal(t, byte(3), page[1].OrganizationID[0])
}

func TestLogLevel(t *testing.T) {
	require.Equal(t, logger.Silent, logLevel("silent"))
	require.Equal(t, logger.Info, logLevel("info"))
	require.Equal(t, logger.Warn, logLevel(""))
}
