package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Placeholder assets used when a record arrives without images set.
const (
	DefaultProjectImage   = "https://via.placeholder.com/400x300/6366f1/ffffff?text=Project"
	DefaultProfilePicture = "https://via.placeholder.com/40x40/a855f7/ffffff?text=%F0%9F%91%A4"
	DefaultCategory       = "Uncategorized"
)

// Categories lists the values the admin form offers for new projects.
var Categories = []string{"Web Application", "Automation"}

// Project represents one showcased student project.
type Project struct {
	ID                     uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	StudentName            string         `json:"student_name" db:"student_name" gorm:"type:text;not null"`
	ProjectTitle           string         `json:"project_title" db:"project_title" gorm:"type:text;not null"`
	Description            string         `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Category               string         `json:"category" db:"category" gorm:"type:text;not null"`
	ToolsTechnologies      pq.StringArray `json:"tools_technologies" db:"tools_technologies" gorm:"type:text[]"`
	MainProjectImage       string         `json:"main_project_image" db:"main_project_image" gorm:"type:text"`
	LinkedinLink           string         `json:"linkedin_link" db:"linkedin_link" gorm:"type:text"`
	LinkedinProfilePicture string         `json:"linkedin_profile_picture" db:"linkedin_profile_picture" gorm:"type:text"`
	GithubLink             string         `json:"github_link" db:"github_link" gorm:"type:text"`
	LiveProjectLink        string         `json:"live_project_link" db:"live_project_link" gorm:"type:text"`
	ProjectVideo           string         `json:"project_video" db:"project_video" gorm:"type:text"`
	LikesCount             int            `json:"likes_count" db:"likes_count" gorm:"not null;default:0"`
	CommentsCount          int            `json:"comments_count" db:"comments_count" gorm:"not null;default:0"`
	CreatedAt              time.Time      `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}

// ApplyDefaults fills every unset field with its documented default so the
// store is never asked to persist a missing value. It runs both before an
// insert and on every record coming back from the store.
func (p *Project) ApplyDefaults() {
	if p.MainProjectImage == "" {
		p.MainProjectImage = DefaultProjectImage
	}
	if p.LinkedinProfilePicture == "" {
		p.LinkedinProfilePicture = DefaultProfilePicture
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.ToolsTechnologies == nil {
		p.ToolsTechnologies = pq.StringArray{}
	}
}
