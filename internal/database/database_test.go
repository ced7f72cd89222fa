package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domain-recovery/internal/config"
	"domain-recovery/internal/models"
)

func TestInitDB_Memory(t *testing.T) {
	db, err := InitDB(&config.DatabaseConfig{Type: "sqlite", Path: MemoryPath})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.WatchedDomain{Name: "lumora.com", IsActive: true}).Error)

	var got models.WatchedDomain
	require.NoError(t, db.Where("name = ?", "lumora.com").First(&got).Error)
	assert.True(t, got.IsActive)

	for _, table := range []any{&models.Analysis{}, &models.Notification{}, &models.Setting{}, &models.User{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
}

func TestInitDB_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := InitDB(&config.DatabaseConfig{Type: "sqlite", Path: path})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Setting{Key: "k", Value: "v"}).Error)

	again, err := InitDB(&config.DatabaseConfig{Type: "sqlite", Path: path})
	require.NoError(t, err)
	var s models.Setting
	require.NoError(t, again.First(&s, "key = ?", "k").Error)
	assert.Equal(t, "v", s.Value)
}

func TestInitDB_UnsupportedType(t *testing.T) {
	_, err := InitDB(&config.DatabaseConfig{Type: "mysql"})
	assert.ErrorContains(t, err, "unsupported database type")
}
