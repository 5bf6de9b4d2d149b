package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TutorBuilder creates test tutors with a builder pattern
type TutorBuilder struct {
	id        uuid.UUID
	firstName string
	lastName  string
	email     string
}

// NewTutorBuilder creates a new TutorBuilder with default values
func NewTutorBuilder() *TutorBuilder {
	id := uuid.New()
	return &TutorBuilder{
		id:        id,
		firstName: "Tutor",
		lastName:  id.String()[:8],
		email:     fmt.Sprintf("tutor_%s@example.com", id.String()[:8]),
	}
}

func (b *TutorBuilder) WithID(id uuid.UUID) *TutorBuilder {
	b.id = id
	return b
}

func (b *TutorBuilder) WithName(first, last string) *TutorBuilder {
	b.firstName = first
	b.lastName = last
	return b
}

// Build creates the tutor in the database
func (b *TutorBuilder) Build(t *testing.T, db *gorm.DB) *domain.Tutor {
	t.Helper()

	tutor := &domain.Tutor{
		ID:        b.id,
		FirstName: b.firstName,
		LastName:  b.lastName,
		Email:     b.email,
	}

	if err := db.Create(tutor).Error; err != nil {
		t.Fatalf("failed to create tutor: %v", err)
	}

	return tutor
}

// StudentBuilder creates test students with a builder pattern
type StudentBuilder struct {
	id        uuid.UUID
	firstName string
	lastName  string
	email     string
}

// NewStudentBuilder creates a new StudentBuilder with default values
func NewStudentBuilder() *StudentBuilder {
	id := uuid.New()
	return &StudentBuilder{
		id:        id,
		firstName: "Student",
		lastName:  id.String()[:8],
		email:     fmt.Sprintf("student_%s@example.com", id.String()[:8]),
	}
}

func (b *StudentBuilder) WithID(id uuid.UUID) *StudentBuilder {
	b.id = id
	return b
}

// Build creates the student in the database
func (b *StudentBuilder) Build(t *testing.T, db *gorm.DB) *domain.Student {
	t.Helper()

	student := &domain.Student{
		ID:        b.id,
		FirstName: b.firstName,
		LastName:  b.lastName,
		Email:     b.email,
	}

	if err := db.Create(student).Error; err != nil {
		t.Fatalf("failed to create student: %v", err)
	}

	return student
}

// ConsultationBuilder creates test consultations with a builder pattern
type ConsultationBuilder struct {
	tutor     *domain.Tutor
	student   *domain.Student
	reason    string
	startTime time.Time
	endTime   *time.Time
	status    domain.ConsultationStatus
}

// NewConsultationBuilder defaults to a pending one-hour slot starting
// tomorrow.
func NewConsultationBuilder() *ConsultationBuilder {
	return &ConsultationBuilder{
		reason:    "Homework help",
		startTime: time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second),
		status:    domain.ConsultationStatusPending,
	}
}

func (b *ConsultationBuilder) WithTutor(tutor *domain.Tutor) *ConsultationBuilder {
	b.tutor = tutor
	return b
}

func (b *ConsultationBuilder) WithStudent(student *domain.Student) *ConsultationBuilder {
	b.student = student
	return b
}

func (b *ConsultationBuilder) WithStartTime(start time.Time) *ConsultationBuilder {
	b.startTime = start.UTC().Truncate(time.Second)
	return b
}

func (b *ConsultationBuilder) WithEndTime(end time.Time) *ConsultationBuilder {
	end = end.UTC().Truncate(time.Second)
	b.endTime = &end
	return b
}

func (b *ConsultationBuilder) WithStatus(status domain.ConsultationStatus) *ConsultationBuilder {
	b.status = status
	return b
}

// Build creates the consultation, creating a tutor and student first when
// none were supplied
func (b *ConsultationBuilder) Build(t *testing.T, db *gorm.DB) *domain.Consultation {
	t.Helper()

	if b.tutor == nil {
		b.tutor = NewTutorBuilder().Build(t, db)
	}
	if b.student == nil {
		b.student = NewStudentBuilder().Build(t, db)
	}

	endTime := b.startTime.Add(time.Hour)
	if b.endTime != nil {
		endTime = *b.endTime
	}

	consultation := &domain.Consultation{
		ID:        uuid.New(),
		TutorID:   b.tutor.ID,
		StudentID: b.student.ID,
		Reason:    b.reason,
		StartTime: b.startTime,
		EndTime:   endTime,
		Status:    b.status,
	}

	if err := db.Create(consultation).Error; err != nil {
		t.Fatalf("failed to create consultation: %v", err)
	}

	consultation.Tutor = b.tutor
	consultation.Student = b.student
	return consultation
}

// AccountBuilder creates login accounts; the raw password is returned by Build
type AccountBuilder struct {
	id       uuid.UUID
	email    string
	password string
}

func NewAccountBuilder() *AccountBuilder {
	id := uuid.New()
	return &AccountBuilder{
		id:       id,
		email:    fmt.Sprintf("user_%s@example.com", id.String()[:8]),
		password: "testpassword123",
	}
}

func (b *AccountBuilder) WithID(id uuid.UUID) *AccountBuilder {
	b.id = id
	return b
}

func (b *AccountBuilder) WithEmail(email string) *AccountBuilder {
	b.email = email
	return b
}

func (b *AccountBuilder) WithPassword(password string) *AccountBuilder {
	b.password = password
	return b
}

func (b *AccountBuilder) Build(t *testing.T, db *gorm.DB) (*domain.Account, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	account := &domain.Account{
		ID:           b.id,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	return account, b.password
}

// ErrorResponse matches the API error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginResponse matches the API login response
type LoginResponse struct {
	OK           bool   `json:"ok"`
	ID           string `json:"id"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Do sends the request with the default client and registers body cleanup
func Do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
