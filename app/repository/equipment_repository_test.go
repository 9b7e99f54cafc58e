package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/HawgLeg/equipscout/app/models"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestActiveListingQueryRateCeilingToleratesNullRates(t *testing.T) {
	maxRate := 300.0
	var out []models.Equipment
	stmt := activeListingQuery(dryRunDB(t), "", &maxRate).Find(&out).Statement

	// The null check and the ceiling must stay one parenthesized clause;
	// split into two conditions the AND chain would drop every unpriced
	// listing.
	assert.Contains(t, stmt.SQL.String(),
		"(equipment.rate_day_min IS NULL OR equipment.rate_day_min <= ?)")
	assert.Contains(t, stmt.Vars, 300.0)
}

func TestActiveListingQueryWithoutCeilingSkipsRatePredicate(t *testing.T) {
	var out []models.Equipment
	stmt := activeListingQuery(dryRunDB(t), "", nil).Find(&out).Statement

	assert.NotContains(t, stmt.SQL.String(), "rate_day_min")
}

func TestActiveListingQueryTypeFilter(t *testing.T) {
	var out []models.Equipment
	stmt := activeListingQuery(dryRunDB(t), models.EquipmentTypeCTL, nil).Find(&out).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "equipment.type = ?")
	assert.Contains(t, sql, "vendors.is_active = ?")
	assert.Contains(t, stmt.Vars, models.EquipmentTypeCTL)
}
