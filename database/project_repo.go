package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/techschool/student-showcase-backend/errs"
	"github.com/techschool/student-showcase-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns every project ordered by creation time, newest first.
func (r *ProjectRepo) FindAll() ([]models.Project, error) {
	if r.db == nil {
		return nil, errs.ErrStoreUnavailable
	}
	var projects []models.Project
	err := r.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// Insert adds a new project; id and created_at are assigned by the store.
func (r *ProjectRepo) Insert(project *models.Project) error {
	if r.db == nil {
		return errs.ErrStoreUnavailable
	}
	return r.db.Create(project).Error
}

// UpdateFields applies a partial update: only the supplied columns are sent.
// Updating an id that matches no row is reported as not found.
func (r *ProjectRepo) UpdateFields(id uuid.UUID, fields map[string]any) error {
	if r.db == nil {
		return errs.ErrStoreUnavailable
	}
	res := r.db.Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project %w", errs.ErrNotFound)
	}
	return nil
}

// Delete removes a project by id. Deleting an id that matches no row is
// reported as not found.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	if r.db == nil {
		return errs.ErrStoreUnavailable
	}
	res := r.db.Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project %w", errs.ErrNotFound)
	}
	return nil
}
