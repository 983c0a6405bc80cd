package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the single role that grants write access.
const RoleAdmin = "admin"

// Admin is a credential record in the admins collection. PasswordHash holds
// either a bcrypt digest or, for legacy seed data, the plain credential.
type Admin struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Role         string    `json:"role" db:"role" gorm:"type:text;not null;default:admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}

// IsAdmin reports whether the record grants administrator rights.
func (a Admin) IsAdmin() bool {
	return a.Role == RoleAdmin
}
