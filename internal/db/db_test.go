package db

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestNewDBSqliteMigrates(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBUrl: "file::memory:"}

	db, err := NewDB(cfg, zerolog.Nop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, table := range []any{
		&models.Service{},
		&models.Stylist{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Reservation{},
		&models.AuditLog{},
	} {
		assert.True(t, db.Migrator().HasTable(table))
	}
	assert.True(t, db.Migrator().HasTable("stylist_services"))
	assert.True(t, db.Migrator().HasIndex(&models.Client{}, "Phone"))
}

func TestNewDBRejectsUnknownDriver(t *testing.T) {
	_, err := NewDB(&config.Config{DBDriver: "mysql", DBUrl: "x"}, zerolog.Nop())
	assert.Error(t, err)
}
