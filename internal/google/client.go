package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultClassroomBaseURL = "https://classroom.googleapis.com/v1"
	defaultFormsBaseURL     = "https://forms.googleapis.com/v1"
	defaultDriveBaseURL     = "https://www.googleapis.com/drive/v3"
)

// Client is a thin read-only client over the Classroom, Forms and Drive
// REST APIs. The http.Client is expected to carry OAuth credentials
// (an oauth2 transport).
type Client struct {
	httpClient       *http.Client
	classroomBaseURL string
	formsBaseURL     string
	driveBaseURL     string
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient:       httpClient,
		classroomBaseURL: defaultClassroomBaseURL,
		formsBaseURL:     defaultFormsBaseURL,
		driveBaseURL:     defaultDriveBaseURL,
	}
}

// WithBaseURLs points every API at the given base URL. Used by tests.
func (c *Client) WithBaseURLs(baseURL string) *Client {
	c.classroomBaseURL = baseURL
	c.formsBaseURL = baseURL
	c.driveBaseURL = baseURL
	return c
}

func (c *Client) get(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("google api: %s (status %d)", apiErr.Error.Message, resp.StatusCode)
		}
		return fmt.Errorf("google api: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}

// ListCourses returns all courses where the authenticated user teaches.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var res coursesResponse
	if err := c.get(ctx, c.classroomBaseURL+"/courses?teacherId=me", &res); err != nil {
		return nil, err
	}
	return res.Courses, nil
}

// ListCourseWork returns the coursework items of one course.
func (c *Client) ListCourseWork(ctx context.Context, courseID string) ([]CourseWork, error) {
	var res courseWorkResponse
	u := fmt.Sprintf("%s/courses/%s/courseWork", c.classroomBaseURL, url.PathEscape(courseID))
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return res.CourseWork, nil
}

// GetForm fetches a form's structural definition (ordered item list).
func (c *Client) GetForm(ctx context.Context, formID string) (*Form, error) {
	var form Form
	u := fmt.Sprintf("%s/forms/%s", c.formsBaseURL, url.PathEscape(formID))
	if err := c.get(ctx, u, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// ListResponses returns a form's submitted responses.
func (c *Client) ListResponses(ctx context.Context, formID string) ([]FormResponse, error) {
	var res formResponsesResponse
	u := fmt.Sprintf("%s/forms/%s/responses", c.formsBaseURL, url.PathEscape(formID))
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return res.Responses, nil
}

// GetFileMetadata fetches name, MIME type and link metadata for one
// Drive file.
func (c *Client) GetFileMetadata(ctx context.Context, fileID string) (*DriveFile, error) {
	var file DriveFile
	u := fmt.Sprintf("%s/files/%s?fields=id,name,mimeType,thumbnailLink,webViewLink",
		c.driveBaseURL, url.PathEscape(fileID))
	if err := c.get(ctx, u, &file); err != nil {
		return nil, err
	}
	return &file, nil
}
