package google

import "encoding/json"

// Wire types for the subset of the Classroom, Forms and Drive REST
// surfaces this app reads. Field shapes follow the v1/v3 JSON schemas.

type Course struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type coursesResponse struct {
	Courses []Course `json:"courses"`
}

type CourseWork struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Materials []Material `json:"materials"`
}

type courseWorkResponse struct {
	CourseWork []CourseWork `json:"courseWork"`
}

type Material struct {
	Form      *FormMaterial    `json:"form,omitempty"`
	DriveFile *SharedDriveFile `json:"driveFile,omitempty"`
}

type FormMaterial struct {
	FormURL string `json:"formUrl"`
	Title   string `json:"title,omitempty"`
}

type SharedDriveFile struct {
	DriveFile *DriveFileRef `json:"driveFile,omitempty"`
}

type DriveFileRef struct {
	ID            string `json:"id"`
	Title         string `json:"title,omitempty"`
	AlternateLink string `json:"alternateLink,omitempty"`
}

type Form struct {
	FormID string     `json:"formId"`
	Items  []FormItem `json:"items"`
}

type FormItem struct {
	ItemID       string        `json:"itemId"`
	Title        string        `json:"title"`
	QuestionItem *QuestionItem `json:"questionItem,omitempty"`
}

type QuestionItem struct {
	Question *FormQuestion `json:"question,omitempty"`
}

// FormQuestion carries one populated type-specific sub-field per the
// Forms API schema; empty-struct pointers act as presence markers.
type FormQuestion struct {
	QuestionID         string              `json:"questionId"`
	TextQuestion       *TextQuestion       `json:"textQuestion,omitempty"`
	ChoiceQuestion     *ChoiceQuestion     `json:"choiceQuestion,omitempty"`
	FileUploadQuestion *FileUploadQuestion `json:"fileUploadQuestion,omitempty"`
	DateQuestion       *DateQuestion       `json:"dateQuestion,omitempty"`
	TimeQuestion       *TimeQuestion       `json:"timeQuestion,omitempty"`
	ScaleQuestion      *ScaleQuestion      `json:"scaleQuestion,omitempty"`
}

type TextQuestion struct {
	Paragraph bool `json:"paragraph,omitempty"`
}

type ChoiceQuestion struct {
	Type    string         `json:"type"`
	Options []ChoiceOption `json:"options"`
}

type ChoiceOption struct {
	Value string `json:"value"`
}

type FileUploadQuestion struct {
	FolderID string `json:"folderId,omitempty"`
}

type DateQuestion struct {
	IncludeTime bool `json:"includeTime,omitempty"`
	IncludeYear bool `json:"includeYear,omitempty"`
}

type TimeQuestion struct {
	Duration bool `json:"duration,omitempty"`
}

type ScaleQuestion struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

type FormResponse struct {
	ResponseID        string            `json:"responseId"`
	RespondentEmail   string            `json:"respondentEmail,omitempty"`
	LastSubmittedTime string            `json:"lastSubmittedTime"`
	Answers           map[string]Answer `json:"answers,omitempty"`
}

type formResponsesResponse struct {
	Responses []FormResponse `json:"responses"`
}

// Answer keeps the raw payload alongside the decoded file-upload shape:
// the raw JSON is persisted verbatim, the decoded part drives Drive
// metadata fetches.
type Answer struct {
	QuestionID        string             `json:"questionId"`
	FileUploadAnswers *FileUploadAnswers `json:"fileUploadAnswers,omitempty"`

	raw json.RawMessage
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	type answer Answer
	var decoded answer
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*a = Answer(decoded)
	a.raw = append([]byte(nil), data...)
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.raw != nil {
		return a.raw, nil
	}
	type answer Answer
	return json.Marshal(answer(a))
}

type FileUploadAnswers struct {
	Answers []FileUploadAnswer `json:"answers"`
}

type FileUploadAnswer struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

type DriveFile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	ThumbnailLink string `json:"thumbnailLink,omitempty"`
	WebViewLink   string `json:"webViewLink,omitempty"`
}

type UserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
