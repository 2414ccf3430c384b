package services

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/models"

	"gorm.io/gorm"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type Dashboard struct {
	TotalCourses     int             `json:"total_courses"`
	TotalAssignments int             `json:"total_assignments"`
	TotalSubmissions int             `json:"total_submissions"`
	Courses          []models.Course `json:"courses"`
}

type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type QuestionSummary struct {
	Question  models.Question `json:"question"`
	ChartData []NameValue     `json:"chart_data"`
	Responses []string        `json:"responses"`
}

type AssignmentAnalytics struct {
	Assignment models.Assignment `json:"assignment"`
	Course     models.Course     `json:"course"`
	Summary    []QuestionSummary `json:"summary"`
}

// GetDashboard returns the teacher's courses with assignments and their
// submissions, plus the headline totals the overview page shows.
func (s *AnalyticsService) GetDashboard(userID uint) (*Dashboard, error) {
	var courses []models.Course
	err := s.db.Where("user_id = ?", userID).
		Preload("Assignments").
		Preload("Assignments.Submissions").
		Order("name ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{Courses: courses, TotalCourses: len(courses)}
	for _, course := range courses {
		dash.TotalAssignments += len(course.Assignments)
		for _, assignment := range course.Assignments {
			dash.TotalSubmissions += len(assignment.Submissions)
		}
	}
	return dash, nil
}

// GetAssignment returns one assignment with questions, submissions and
// files, plus the per-question answer distribution.
func (s *AnalyticsService) GetAssignment(assignmentID string, userID uint) (*AssignmentAnalytics, error) {
	var assignment models.Assignment
	err := s.db.Where("id = ?", assignmentID).
		Preload("Course").
		Preload("Questions").
		Preload("Submissions").
		Preload("Submissions.Files").
		First(&assignment).Error
	if err != nil {
		return nil, errors.New("assignment not found")
	}
	if assignment.Course.UserID != userID {
		return nil, errors.New("assignment not found")
	}

	summary := make([]QuestionSummary, 0, len(assignment.Questions))
	for _, question := range assignment.Questions {
		qs := QuestionSummary{
			Question:  question,
			ChartData: []NameValue{},
			Responses: []string{},
		}

		counts := map[string]int{}
		order := []string{}
		for _, sub := range assignment.Submissions {
			val := answerValue(sub.Answers, question.ID)
			if val == "" {
				continue
			}
			qs.Responses = append(qs.Responses, val)
			if _, seen := counts[val]; !seen {
				order = append(order, val)
			}
			counts[val]++
		}
		for _, name := range order {
			qs.ChartData = append(qs.ChartData, NameValue{Name: name, Value: counts[name]})
		}

		summary = append(summary, qs)
	}

	return &AssignmentAnalytics{Assignment: assignment, Course: assignment.Course, Summary: summary}, nil
}

type textAnswerPayload struct {
	TextAnswers *struct {
		Answers []struct {
			Value string `json:"value"`
		} `json:"answers"`
	} `json:"textAnswers"`
}

// answerValue extracts the text value(s) a submission gave for one
// question from the raw answers payload. Non-text answer shapes yield "".
func answerValue(answers []byte, questionID string) string {
	if len(answers) == 0 {
		return ""
	}

	var payload map[string]textAnswerPayload
	if err := json.Unmarshal(answers, &payload); err != nil {
		return ""
	}

	ans, ok := payload[questionID]
	if !ok || ans.TextAnswers == nil {
		return ""
	}

	values := make([]string, 0, len(ans.TextAnswers.Answers))
	for _, a := range ans.TextAnswers.Answers {
		values = append(values, a.Value)
	}
	return strings.Join(values, ", ")
}
