package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/techschool/student-showcase-backend/errs"
	"github.com/techschool/student-showcase-backend/models"
	"gorm.io/gorm"
)

type AdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db}
}

// FindByEmail looks up a credential record by email. The lookup is tolerant:
// a missing record returns (nil, nil), not an error.
func (r *AdminRepo) FindByEmail(email string) (*models.Admin, error) {
	if r.db == nil {
		return nil, errs.ErrStoreUnavailable
	}
	var admin models.Admin
	err := r.db.Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByID looks up a credential record by id, tolerantly. Used to validate
// a persisted session token at startup and on each authenticated request.
func (r *AdminRepo) FindByID(id uuid.UUID) (*models.Admin, error) {
	if r.db == nil {
		return nil, errs.ErrStoreUnavailable
	}
	var admin models.Admin
	err := r.db.Where("id = ?", id).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
