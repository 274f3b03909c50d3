package helper

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"seminar_manager/database"
	"seminar_manager/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	database.Migrate(db)
	database.DB = db
	t.Cleanup(func() { database.DB = nil })
	return db
}

func TestReconcileRegisteredCounts(t *testing.T) {
	db := newTestDB(t)

	drifted := model.Seminar{
		Title: "Drifted", Slug: "drifted", Speaker: "Dr. Jane Doe",
		Topic: "Counts", Capacity: 100, RegisteredCount: 7,
	}
	require.NoError(t, db.Create(&drifted).Error)
	accurate := model.Seminar{
		Title: "Accurate", Slug: "accurate", Speaker: "Dr. Jane Doe",
		Topic: "Counts", Capacity: 100, RegisteredCount: 1,
	}
	require.NoError(t, db.Create(&accurate).Error)

	for i, seminar := range []model.Seminar{drifted, drifted, accurate} {
		require.NoError(t, db.Create(&model.Registration{
			SeminarId:        seminar.ID,
			StudentName:      fmt.Sprintf("Student %d", i),
			Email:            fmt.Sprintf("student%d@example.com", i),
			RegistrationDate: time.Now(),
		}).Error)
	}

	ReconcileRegisteredCounts()

	var fixed model.Seminar
	require.NoError(t, db.First(&fixed, drifted.ID).Error)
	assert.Equal(t, 2, fixed.RegisteredCount)

	var unchanged model.Seminar
	require.NoError(t, db.First(&unchanged, accurate.ID).Error)
	assert.Equal(t, 1, unchanged.RegisteredCount)
}

func TestReconcileWithoutDatabase(t *testing.T) {
	database.DB = nil
	// Must be a no-op, not a panic.
	ReconcileRegisteredCounts()
}
