// Package dbtest opens throwaway in-memory databases for package tests.
package dbtest

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/calendar-scheduler/internal/db"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
)

// Open returns a migrated in-memory SQLite database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Second)
		},
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb, "America/Sao_Paulo"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// Company inserts an active company.
func Company(t testing.TB, gdb *gorm.DB, slug string) *models.Company {
	t.Helper()
	c := &models.Company{Name: slug, Slug: slug, Active: true, Timezone: "America/Sao_Paulo"}
	if err := gdb.Create(c).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	return c
}

// User inserts a staff user of company.
func User(t testing.TB, gdb *gorm.DB, companyID uint, email string) *models.User {
	t.Helper()
	u := &models.User{
		CompanyID:    companyID,
		Name:         email,
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleStaff,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}
