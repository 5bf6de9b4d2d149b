package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryHandler_ListTutors(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.NewTutorBuilder().WithName("Grace", "Hopper").Build(t, ts.DB.DB)
	testutil.NewTutorBuilder().WithName("Ada", "Lovelace").Build(t, ts.DB.DB)
	caller := testutil.NewStudentBuilder().Build(t, ts.DB.DB)

	resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/tutors"), nil, ""))
	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")

	resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/tutors"), nil, ts.TokenFor(t, caller.ID)))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var tutors []domain.TutorSummary
	testutil.AssertJSONResponse(t, resp, &tutors)
	require.Len(t, tutors, 2)
	assert.Equal(t, "Hopper", tutors[0].LastName)
	assert.Equal(t, "Lovelace", tutors[1].LastName)
}

func TestDirectoryHandler_ListTutorsPublic(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.TutorsRequireAuth = false
	ts := testutil.NewTestServerWithConfig(t, cfg)

	resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/tutors"), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var tutors []domain.TutorSummary
	testutil.AssertJSONResponse(t, resp, &tutors)
	assert.NotNil(t, tutors)
	assert.Empty(t, tutors)
}

func TestDirectoryHandler_GetTutor(t *testing.T) {
	ts := testutil.NewTestServer(t)
	tutor := testutil.NewTutorBuilder().Build(t, ts.DB.DB)
	student := testutil.NewStudentBuilder().Build(t, ts.DB.DB)
	upcoming := testutil.NewConsultationBuilder().WithTutor(tutor).WithStudent(student).WithStartTime(time.Now().Add(5 * time.Hour)).Build(t, ts.DB.DB)
	testutil.NewConsultationBuilder().WithTutor(tutor).WithStartTime(time.Now().Add(-5 * time.Hour)).Build(t, ts.DB.DB)

	resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/tutors/"+tutor.ID.String()), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var got domain.Tutor
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, tutor.ID, got.ID)
	require.Len(t, got.Consultations, 1)
	assert.Equal(t, upcoming.ID, got.Consultations[0].ID)

	// The profile is public: no student records are embedded.
	assert.Nil(t, got.Consultations[0].Student)
	assert.NotContains(t, string(body), student.Email)
	assert.NotContains(t, string(body), `"student":`)

	resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/tutors/"+uuid.NewString()), nil, ""))
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Tutor not found")

	resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/tutors/nope"), nil, ""))
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Tutor not found")
}

func TestDirectoryHandler_GetStudent(t *testing.T) {
	ts := testutil.NewTestServer(t)
	tutor := testutil.NewTutorBuilder().Build(t, ts.DB.DB)
	student := testutil.NewStudentBuilder().Build(t, ts.DB.DB)
	other := testutil.NewStudentBuilder().Build(t, ts.DB.DB)
	testutil.NewConsultationBuilder().WithTutor(tutor).WithStudent(student).Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		target         uuid.UUID
		caller         uuid.UUID
		anonymous      bool
		expectedStatus int
		expectedError  string
	}{
		{name: "self", target: student.ID, caller: student.ID, expectedStatus: http.StatusOK},
		{name: "registered tutor", target: student.ID, caller: tutor.ID, expectedStatus: http.StatusOK},
		{name: "another student", target: student.ID, caller: other.ID, expectedStatus: http.StatusForbidden, expectedError: "Forbidden"},
		{name: "another student probing an unknown id", target: uuid.New(), caller: other.ID, expectedStatus: http.StatusForbidden, expectedError: "Forbidden"},
		{name: "tutor asking for an unknown id", target: uuid.New(), caller: tutor.ID, expectedStatus: http.StatusNotFound, expectedError: "Student not found"},
		{name: "anonymous", target: student.ID, anonymous: true, expectedStatus: http.StatusUnauthorized, expectedError: "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := ""
			if !tt.anonymous {
				token = ts.TokenFor(t, tt.caller)
			}
			resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/students/"+tt.target.String()), nil, token))

			if tt.expectedError != "" {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedError)
				return
			}

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			var got domain.Student
			testutil.AssertJSONResponse(t, resp, &got)
			assert.Equal(t, student.ID, got.ID)
			require.Len(t, got.Consultations, 1)
			assert.NotNil(t, got.Consultations[0].Tutor)
		})
	}
}
