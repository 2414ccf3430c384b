package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client()).WithBaseURLs(srv.URL)
}

func TestListCourses(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses", r.URL.Path)
		assert.Equal(t, "me", r.URL.Query().Get("teacherId"))
		w.Write([]byte(`{"courses":[{"id":"C1","name":"Biology"},{"id":"C2","name":"Chemistry"}]}`))
	}))

	courses, err := client.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "C1", courses[0].ID)
	assert.Equal(t, "Biology", courses[0].Name)
}

func TestListCoursesEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	courses, err := client.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestListCourseWork(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/C1/courseWork", r.URL.Path)
		w.Write([]byte(`{"courseWork":[{
			"id":"A1","title":"Quiz 1",
			"materials":[
				{"form":{"formUrl":"https://docs.google.com/forms/d/1AbcXYZ/viewform"}},
				{"driveFile":{"driveFile":{"id":"d1","alternateLink":"https://docs.google.com/document/d/xyz/edit"}}}
			]
		}]}`))
	}))

	work, err := client.ListCourseWork(context.Background(), "C1")
	require.NoError(t, err)
	require.Len(t, work, 1)
	assert.Equal(t, "A1", work[0].ID)
	require.Len(t, work[0].Materials, 2)
	require.NotNil(t, work[0].Materials[0].Form)
	assert.Equal(t, "https://docs.google.com/forms/d/1AbcXYZ/viewform", work[0].Materials[0].Form.FormURL)
	require.NotNil(t, work[0].Materials[1].DriveFile)
	assert.Equal(t, "https://docs.google.com/document/d/xyz/edit", work[0].Materials[1].DriveFile.DriveFile.AlternateLink)
}

func TestGetForm(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/F1", r.URL.Path)
		w.Write([]byte(`{"formId":"F1","items":[
			{"itemId":"i1","title":"Favourite color?","questionItem":{"question":{
				"questionId":"q1",
				"choiceQuestion":{"type":"RADIO","options":[{"value":"Red"},{"value":"Blue"}]}
			}}},
			{"itemId":"i2","title":"Section header"}
		]}`))
	}))

	form, err := client.GetForm(context.Background(), "F1")
	require.NoError(t, err)
	assert.Equal(t, "F1", form.FormID)
	require.Len(t, form.Items, 2)

	q := form.Items[0].QuestionItem.Question
	assert.Equal(t, "q1", q.QuestionID)
	require.NotNil(t, q.ChoiceQuestion)
	assert.Equal(t, "RADIO", q.ChoiceQuestion.Type)
	assert.Equal(t, []ChoiceOption{{Value: "Red"}, {Value: "Blue"}}, q.ChoiceQuestion.Options)
	assert.Nil(t, form.Items[1].QuestionItem)
}

func TestListResponses(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/F1/responses", r.URL.Path)
		w.Write([]byte(`{"responses":[{
			"responseId":"r1",
			"respondentEmail":"student@example.com",
			"lastSubmittedTime":"2024-05-01T10:00:00Z",
			"answers":{
				"q1":{"questionId":"q1","textAnswers":{"answers":[{"value":"Red"}]}},
				"q2":{"questionId":"q2","fileUploadAnswers":{"answers":[{"fileId":"file-1","fileName":"essay.pdf"}]}}
			}
		}]}`))
	}))

	responses, err := client.ListResponses(context.Background(), "F1")
	require.NoError(t, err)
	require.Len(t, responses, 1)

	resp := responses[0]
	assert.Equal(t, "student@example.com", resp.RespondentEmail)
	assert.Equal(t, "2024-05-01T10:00:00Z", resp.LastSubmittedTime)
	require.Len(t, resp.Answers, 2)

	fileAnswer := resp.Answers["q2"]
	require.NotNil(t, fileAnswer.FileUploadAnswers)
	require.Len(t, fileAnswer.FileUploadAnswers.Answers, 1)
	assert.Equal(t, "file-1", fileAnswer.FileUploadAnswers.Answers[0].FileID)
}

func TestAnswerPreservesRawPayload(t *testing.T) {
	// The answer payload is provider-defined and heterogeneous; persisting
	// it must keep fields this app never decodes, like textAnswers.
	raw := `{"questionId":"q1","textAnswers":{"answers":[{"value":"Red"},{"value":"Blue"}]}}`

	var answer Answer
	require.NoError(t, json.Unmarshal([]byte(raw), &answer))

	out, err := json.Marshal(answer)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestGetFileMetadata(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/file-1", r.URL.Path)
		assert.Equal(t, "id,name,mimeType,thumbnailLink,webViewLink", r.URL.Query().Get("fields"))
		w.Write([]byte(`{"id":"file-1","name":"essay.pdf","mimeType":"application/pdf","webViewLink":"https://drive.google.com/view/file-1"}`))
	}))

	file, err := client.GetFileMetadata(context.Background(), "file-1")
	require.NoError(t, err)
	assert.Equal(t, "file-1", file.ID)
	assert.Equal(t, "essay.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.MimeType)
	assert.Equal(t, "https://drive.google.com/view/file-1", file.WebViewLink)
}

func TestAPIErrorSurfacesMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	}))

	_, err := client.GetForm(context.Background(), "F1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The caller does not have permission")
	assert.Contains(t, err.Error(), "403")
}

func TestAPIErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListCourses(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
