// Package dbtest 为各层测试提供开启外键的内存 SQLite 库
package dbtest

import (
	"ContentTracker/internal/api/config"
	"ContentTracker/internal/pkg/database"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const MemoryDSN = "file::memory:?_pragma=foreign_keys(1)"

// NewDB 每次调用返回一份独立的空库
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGormDB(&config.DBConfig{
		Driver:  database.DriverSQLite,
		DSN:     MemoryDSN,
		MaxIdle: 1,
		MaxOpen: 1,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
