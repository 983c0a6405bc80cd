package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/techschool/student-showcase-backend/errs"
	"github.com/techschool/student-showcase-backend/models"
)

// Without a reachable store every operation reports failure instead of
// panicking; the rest of the service keeps running against empty results.
func TestDegradedModeReportsStoreUnavailable(t *testing.T) {
	db := New(nil)

	_, err := db.ProjectRepo().FindAll()
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

	err = db.ProjectRepo().Insert(&models.Project{ProjectTitle: "Bot"})
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

	err = db.ProjectRepo().UpdateFields(uuid.New(), map[string]any{"description": "x"})
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

	err = db.ProjectRepo().Delete(uuid.New())
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

	_, err = db.SuccessStoryRepo().FindAll()
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

	_, err = db.AdminRepo().FindByEmail("admin@techschool.com")
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

	_, err = db.AdminRepo().FindByID(uuid.New())
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

	assert.ErrorIs(t, db.Migrate(), errs.ErrStoreUnavailable)
}
