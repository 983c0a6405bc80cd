package database

import (
	"github.com/techschool/student-showcase-backend/errs"
	"github.com/techschool/student-showcase-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	projectRepo      *ProjectRepo
	successStoryRepo *SuccessStoryRepo
	adminRepo        *AdminRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance. A nil db is allowed: it yields a degraded Database
// whose every operation reports the store as unavailable, so the service can
// keep running with empty results when the backend is unreachable.
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:      NewProjectRepo(db),
		successStoryRepo: NewSuccessStoryRepo(db),
		adminRepo:        NewAdminRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SuccessStoryRepo() *SuccessStoryRepo {
	return d.successStoryRepo
}

func (d Database) AdminRepo() *AdminRepo {
	return d.adminRepo
}

// Migrate creates or updates the projects, success_stories and admins
// tables. It is a no-op failure in degraded mode.
func (d Database) Migrate() error {
	if d.projectRepo == nil || d.projectRepo.db == nil {
		return errs.ErrStoreUnavailable
	}
	return d.projectRepo.db.AutoMigrate(
		&models.Project{},
		&models.SuccessStory{},
		&models.Admin{},
	)
}
