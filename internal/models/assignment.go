package models

import "time"

// Assignment is a Classroom coursework item with a linked Google Form.
// Items without a detectable form link are never persisted.
type Assignment struct {
	ID          string       `gorm:"primaryKey;size:64" json:"id"`
	CourseID    string       `gorm:"size:64;not null;index" json:"course_id"`
	Course      Course       `gorm:"foreignKey:CourseID" json:"-"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	FormID      string       `gorm:"size:128;not null" json:"form_id"`
	FormURL     string       `gorm:"size:500" json:"form_url"`
	Questions   []Question   `gorm:"foreignKey:AssignmentID" json:"questions,omitempty"`
	Submissions []Submission `gorm:"foreignKey:AssignmentID" json:"submissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
