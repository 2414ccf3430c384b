package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is one form response. Duplicate detection is on the
// (assignment, submitted_at) pair, not the provider's response id, so a
// row is created at most once per natural key and never updated.
type Submission struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	AssignmentID string         `gorm:"size:64;not null;index:idx_submission_natural" json:"assignment_id"`
	SubmittedAt  time.Time      `gorm:"not null;index:idx_submission_natural" json:"submitted_at"`
	StudentEmail string         `gorm:"size:255;not null" json:"student_email"`
	Answers      datatypes.JSON `json:"answers,omitempty"`
	Files        []FormFile     `gorm:"foreignKey:SubmissionID" json:"files,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
