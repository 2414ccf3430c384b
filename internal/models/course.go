package models

import "time"

// Course mirrors a Classroom course. The primary key is Classroom's own
// opaque course id, so re-syncs upsert instead of duplicating.
type Course struct {
	ID          string       `gorm:"primaryKey;size:64" json:"id"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	Assignments []Assignment `gorm:"foreignKey:CourseID" json:"assignments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
