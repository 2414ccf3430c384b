package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/google"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/models"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/ws"

	"golang.org/x/oauth2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Narrow capability contracts over the three external read APIs, so the
// reconciler can be exercised against fakes.

type ClassroomAPI interface {
	ListCourses(ctx context.Context) ([]google.Course, error)
	ListCourseWork(ctx context.Context, courseID string) ([]google.CourseWork, error)
}

type FormsAPI interface {
	GetForm(ctx context.Context, formID string) (*google.Form, error)
	ListResponses(ctx context.Context, formID string) ([]google.FormResponse, error)
}

type DriveAPI interface {
	GetFileMetadata(ctx context.Context, fileID string) (*google.DriveFile, error)
}

// SyncService walks courses → coursework → linked forms → responses →
// attached files and reconciles them into local rows. Courses,
// assignments and questions are upserted; submissions and files are
// created at most once and never touched again.
type SyncService struct {
	db          *gorm.DB
	credentials *CredentialService
	oauthCfg    *oauth2.Config
	hub         *ws.Hub

	newClients func(httpClient *http.Client) (ClassroomAPI, FormsAPI, DriveAPI)
}

func NewSyncService(db *gorm.DB, credentials *CredentialService, oauthCfg *oauth2.Config, hub *ws.Hub) *SyncService {
	s := &SyncService{
		db:          db,
		credentials: credentials,
		oauthCfg:    oauthCfg,
		hub:         hub,
	}
	s.newClients = func(httpClient *http.Client) (ClassroomAPI, FormsAPI, DriveAPI) {
		c := google.NewClient(httpClient)
		return c, c, c
	}
	return s
}

// Sync runs a full reconciliation for one user. Credential problems and
// course/coursework listing failures are fatal; per-form and per-file
// failures are logged and skipped.
func (s *SyncService) Sync(ctx context.Context, userID uint) error {
	cred, err := s.credentials.Get(userID)
	if err != nil {
		return err
	}

	ts := s.oauthCfg.TokenSource(ctx, &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		Expiry:       cred.Expiry,
	})

	// Lightweight validation before the traversal: forces a refresh when
	// the access token is stale and surfaces a revoked refresh token
	// here instead of deep inside the course loop.
	if _, err := ts.Token(); err != nil {
		if google.IsInvalidGrant(err) {
			return ErrCredentialExpired
		}
		return fmt.Errorf("validate token: %w", err)
	}
	s.persistIfRotated(cred, ts)
	defer s.persistIfRotated(cred, ts)

	classroom, forms, drive := s.newClients(oauth2.NewClient(ctx, ts))
	return s.reconcile(ctx, userID, cred, ts, classroom, forms, drive)
}

func (s *SyncService) reconcile(ctx context.Context, userID uint, cred *models.Credential, ts oauth2.TokenSource, classroom ClassroomAPI, forms FormsAPI, drive DriveAPI) error {
	log.Printf("sync: starting for user %d", userID)
	s.emit(userID, "sync_started", nil)

	courses, err := classroom.ListCourses(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}

	for _, course := range courses {
		if course.ID == "" {
			continue
		}

		name := course.Name
		if name == "" {
			name = "Untitled"
		}
		row := models.Course{ID: course.ID, Name: name, UserID: userID}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("upsert course %s: %w", course.ID, err)
		}

		work, err := classroom.ListCourseWork(ctx, course.ID)
		if err != nil {
			return fmt.Errorf("list coursework for course %s: %w", course.ID, err)
		}

		for _, item := range work {
			if item.ID == "" {
				continue
			}

			formID, formURL := detectFormLink(item.Materials)
			if formID == "" {
				// Coursework without a linked form is not persisted.
				continue
			}

			title := item.Title
			if title == "" {
				title = "Untitled"
			}
			assignment := models.Assignment{
				ID:       item.ID,
				CourseID: course.ID,
				Title:    title,
				FormID:   formID,
				FormURL:  formURL,
			}
			err := s.db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"title", "form_id", "form_url", "updated_at"}),
			}).Create(&assignment).Error
			if err != nil {
				return fmt.Errorf("upsert assignment %s: %w", item.ID, err)
			}

			// One broken form (not owned, deleted, transient fault) must
			// not take down the rest of the run.
			if err := s.syncForm(ctx, item.ID, formID, forms, drive); err != nil {
				log.Printf("sync: form %s (assignment %s): %v", formID, item.ID, err)
			}
		}

		s.persistIfRotated(cred, ts)
		s.emit(userID, "course_synced", map[string]interface{}{"course_id": course.ID, "name": name})
	}

	s.emit(userID, "sync_finished", map[string]interface{}{"courses": len(courses)})
	log.Printf("sync: finished for user %d (%d courses)", userID, len(courses))
	return nil
}

// syncForm upserts the form's question schema, then creates rows for any
// responses not seen before, fetching Drive metadata for uploaded files.
func (s *SyncService) syncForm(ctx context.Context, assignmentID, formID string, forms FormsAPI, drive DriveAPI) error {
	form, err := forms.GetForm(ctx, formID)
	if err != nil {
		return fmt.Errorf("get form: %w", err)
	}

	for _, item := range form.Items {
		if item.QuestionItem == nil || item.QuestionItem.Question == nil {
			// Section headers, images and the like carry no question.
			continue
		}
		q := item.QuestionItem.Question
		if q.QuestionID == "" {
			continue
		}

		qType := models.QuestionTypeText
		options := []string{}
		if q.ChoiceQuestion != nil {
			qType = q.ChoiceQuestion.Type
			if qType == "" {
				qType = models.QuestionTypeRadio
			}
			for _, opt := range q.ChoiceQuestion.Options {
				options = append(options, opt.Value)
			}
		}
		if q.FileUploadQuestion != nil {
			qType = models.QuestionTypeFileUpload
		}
		if q.DateQuestion != nil {
			qType = models.QuestionTypeDate
		}
		if q.TimeQuestion != nil {
			qType = models.QuestionTypeTime
		}
		if q.ScaleQuestion != nil {
			qType = models.QuestionTypeScale
		}

		optionsJSON, err := json.Marshal(options)
		if err != nil {
			return fmt.Errorf("marshal options for question %s: %w", q.QuestionID, err)
		}

		question := models.Question{
			ID:           q.QuestionID,
			AssignmentID: assignmentID,
			Title:        item.Title,
			Type:         qType,
			Options:      datatypes.JSON(optionsJSON),
		}
		err = s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "type", "options"}),
		}).Create(&question).Error
		if err != nil {
			return fmt.Errorf("upsert question %s: %w", q.QuestionID, err)
		}
	}

	responses, err := forms.ListResponses(ctx, formID)
	if err != nil {
		return fmt.Errorf("list responses: %w", err)
	}

	for _, resp := range responses {
		submittedAt, err := time.Parse(time.RFC3339, resp.LastSubmittedTime)
		if err != nil {
			return fmt.Errorf("parse submit time %q: %w", resp.LastSubmittedTime, err)
		}

		// Natural duplicate key: (assignment, submission timestamp).
		var existing models.Submission
		err = s.db.Where("assignment_id = ? AND submitted_at = ?", assignmentID, submittedAt).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check submission: %w", err)
		}

		email := resp.RespondentEmail
		if email == "" {
			email = "Anonymous"
		}

		var answersJSON datatypes.JSON
		if resp.Answers != nil {
			raw, err := json.Marshal(resp.Answers)
			if err != nil {
				return fmt.Errorf("marshal answers: %w", err)
			}
			answersJSON = datatypes.JSON(raw)
		}

		submission := models.Submission{
			AssignmentID: assignmentID,
			SubmittedAt:  submittedAt,
			StudentEmail: email,
			Answers:      answersJSON,
		}
		if err := s.db.Create(&submission).Error; err != nil {
			return fmt.Errorf("create submission: %w", err)
		}

		for _, answer := range resp.Answers {
			if answer.FileUploadAnswers == nil {
				continue
			}
			for _, fileAnswer := range answer.FileUploadAnswers.Answers {
				if fileAnswer.FileID == "" {
					continue
				}
				if err := s.syncFile(ctx, submission.ID, fileAnswer.FileID, drive); err != nil {
					log.Printf("sync: file %s (submission %d): %v", fileAnswer.FileID, submission.ID, err)
				}
			}
		}
	}

	return nil
}

func (s *SyncService) syncFile(ctx context.Context, submissionID uint, fileID string, drive DriveAPI) error {
	meta, err := drive.GetFileMetadata(ctx, fileID)
	if err != nil {
		return fmt.Errorf("get file metadata: %w", err)
	}

	name := meta.Name
	if name == "" {
		name = "Untitled"
	}
	mimeType := meta.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	file := models.FormFile{
		FileID:        meta.ID,
		SubmissionID:  submissionID,
		Name:          name,
		MimeType:      mimeType,
		ThumbnailLink: meta.ThumbnailLink,
		WebViewLink:   meta.WebViewLink,
	}
	return s.db.Create(&file).Error
}

// persistIfRotated compares the token source's current token against the
// stored credential and persists any rotation. Replaces the provider
// SDK's hidden refresh hook with an explicit post-call check.
func (s *SyncService) persistIfRotated(cred *models.Credential, ts oauth2.TokenSource) {
	tok, err := ts.Token()
	if err != nil {
		return
	}
	if tok.AccessToken == cred.AccessToken &&
		(tok.RefreshToken == "" || tok.RefreshToken == cred.RefreshToken) {
		return
	}
	if err := s.credentials.SaveRotated(cred, tok); err != nil {
		log.Printf("sync: persist rotated token: %v", err)
	}
}

func (s *SyncService) emit(userID uint, event string, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(userID, ws.Message{Type: event, Data: data})
}

// The form id is the URL segment after /d/: alphanumerics, hyphens and
// underscores up to the next slash.
var formIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)

// detectFormLink scans coursework materials for a linked Google Form,
// either an explicit form material or a Drive file whose alternate link
// points into the Forms namespace. Every material is visited, so with
// multiple form links the last one in provider order is retained.
func detectFormLink(materials []google.Material) (formID, formURL string) {
	for _, mat := range materials {
		var possibleURL string
		if mat.Form != nil && mat.Form.FormURL != "" {
			possibleURL = mat.Form.FormURL
		} else if mat.DriveFile != nil && mat.DriveFile.DriveFile != nil {
			possibleURL = mat.DriveFile.DriveFile.AlternateLink
		}

		if possibleURL == "" || !strings.Contains(possibleURL, "docs.google.com/forms") {
			continue
		}

		formURL = possibleURL
		if m := formIDPattern.FindStringSubmatch(possibleURL); m != nil {
			formID = m[1]
		}
	}
	return formID, formURL
}
