package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/techschool/student-showcase-backend/errs"
	"github.com/techschool/student-showcase-backend/models"
	"gorm.io/gorm"
)

type SuccessStoryRepo struct {
	db *gorm.DB
}

func NewSuccessStoryRepo(db *gorm.DB) *SuccessStoryRepo {
	return &SuccessStoryRepo{db}
}

// FindAll returns every story ordered by creation time, newest first.
func (r *SuccessStoryRepo) FindAll() ([]models.SuccessStory, error) {
	if r.db == nil {
		return nil, errs.ErrStoreUnavailable
	}
	var stories []models.SuccessStory
	err := r.db.Order("created_at DESC").Find(&stories).Error
	return stories, err
}

// Insert adds a new story; id and created_at are assigned by the store.
func (r *SuccessStoryRepo) Insert(story *models.SuccessStory) error {
	if r.db == nil {
		return errs.ErrStoreUnavailable
	}
	return r.db.Create(story).Error
}

// UpdateFields applies a partial update: only the supplied columns are sent.
func (r *SuccessStoryRepo) UpdateFields(id uuid.UUID, fields map[string]any) error {
	if r.db == nil {
		return errs.ErrStoreUnavailable
	}
	res := r.db.Model(&models.SuccessStory{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("success story %w", errs.ErrNotFound)
	}
	return nil
}

// Delete removes a story by id.
func (r *SuccessStoryRepo) Delete(id uuid.UUID) error {
	if r.db == nil {
		return errs.ErrStoreUnavailable
	}
	res := r.db.Delete(&models.SuccessStory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("success story %w", errs.ErrNotFound)
	}
	return nil
}
