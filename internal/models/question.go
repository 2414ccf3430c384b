package models

import "gorm.io/datatypes"

const (
	QuestionTypeText       = "TEXT"
	QuestionTypeRadio      = "RADIO"
	QuestionTypeFileUpload = "FILE_UPLOAD"
	QuestionTypeDate       = "DATE"
	QuestionTypeTime       = "TIME"
	QuestionTypeScale      = "SCALE"
)

// Question is one item of a form's structure, keyed by the Forms API
// question id. Options is a JSON array of label strings, populated only
// for choice questions.
type Question struct {
	ID           string         `gorm:"primaryKey;size:64" json:"id"`
	AssignmentID string         `gorm:"size:64;not null;index" json:"assignment_id"`
	Title        string         `gorm:"size:500" json:"title"`
	Type         string         `gorm:"size:20;not null" json:"type"`
	Options      datatypes.JSON `json:"options,omitempty"`
}
