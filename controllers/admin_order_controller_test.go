package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds statements without touching a database.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=marmitex dbname=marmitex sslmode=disable"), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)
	return db
}

func TestReenableDepletedDishOnlyTargetsAutoDisabled(t *testing.T) {
	db := dryRunDB(t)

	stmt := reenableDepletedDish(db, 5).Update("available", true).Statement

	// Only dishes the stock clamp took off the menu are matched; a dish an
	// admin hid while it still had stock stays hidden after a restock.
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "stock <= 0")
	assert.Contains(t, sql, "available = $")
	assert.Contains(t, stmt.Vars, uint(5))
	assert.Contains(t, stmt.Vars, false)
}
