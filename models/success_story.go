package models

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Achievement types a story can carry.
const (
	AchievementJobPlacement  = "job_placement"
	AchievementCertification = "certification"
	AchievementPromotion     = "promotion"
	AchievementStartup       = "startup"
	AchievementOther         = "other"
)

// AchievementTypes lists every accepted achievement_type value.
var AchievementTypes = []string{
	AchievementJobPlacement,
	AchievementCertification,
	AchievementPromotion,
	AchievementStartup,
	AchievementOther,
}

// SuccessStory represents one student achievement narrative.
type SuccessStory struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	StudentName     string    `json:"student_name" db:"student_name" gorm:"type:text;not null"`
	Title           string    `json:"title" db:"title" gorm:"type:text;not null"`
	Content         string    `json:"content" db:"content" gorm:"type:text;not null"`
	Company         string    `json:"company" db:"company" gorm:"type:text"`
	Position        string    `json:"position" db:"position" gorm:"type:text"`
	LinkedinLink    string    `json:"linkedin_link" db:"linkedin_link" gorm:"type:text"`
	AchievementType string    `json:"achievement_type" db:"achievement_type" gorm:"type:text;not null"`
	StudentImage    string    `json:"student_image" db:"student_image" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}

// AvatarFor returns the generated fallback avatar for a student name.
func AvatarFor(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) +
		"&background=6366f1&color=ffffff&size=200&rounded=true"
}

// ApplyDefaults fills unset optional fields; the student image falls back to
// a generated avatar keyed by the student's name.
func (s *SuccessStory) ApplyDefaults() {
	if s.StudentImage == "" {
		s.StudentImage = AvatarFor(s.StudentName)
	}
	if s.AchievementType == "" {
		s.AchievementType = AchievementOther
	}
}
