package models

import "time"

// FormFile is Drive metadata for a file uploaded through a FILE_UPLOAD
// question answer. Created once per sync of its submission, never updated.
type FormFile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FileID        string    `gorm:"size:128;not null;index" json:"file_id"`
	SubmissionID  uint      `gorm:"not null;index" json:"submission_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	MimeType      string    `gorm:"size:128;not null" json:"mime_type"`
	ThumbnailLink string    `gorm:"size:500" json:"thumbnail_link,omitempty"`
	WebViewLink   string    `gorm:"size:500" json:"web_view_link,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
