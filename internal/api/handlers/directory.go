package handlers

import (
	"net/http"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/service"
	"github.com/go-chi/chi/v5"
)

type DirectoryHandler struct {
	directoryService *service.DirectoryService
}

// Profiles always carry a consultations array, even when it is empty.
type tutorProfile struct {
	*domain.Tutor
	Consultations []domain.Consultation `json:"consultations"`
}

type studentProfile struct {
	*domain.Student
	Consultations []domain.Consultation `json:"consultations"`
}

func nonNil(c []domain.Consultation) []domain.Consultation {
	if c == nil {
		return []domain.Consultation{}
	}
	return c
}

func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

func (h *DirectoryHandler) ListTutors(w http.ResponseWriter, r *http.Request) {
	tutors, err := h.directoryService.ListTutors(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch tutors")
		return
	}

	writeJSON(w, http.StatusOK, tutors)
}

func (h *DirectoryHandler) GetTutor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, domain.ErrTutorNotFound, "Failed to fetch tutor")
		return
	}

	tutor, err := h.directoryService.GetTutor(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to fetch tutor")
		return
	}
	writeJSON(w, http.StatusOK, tutorProfile{Tutor: tutor, Consultations: nonNil(tutor.Consultations)})
}

func (h *DirectoryHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, domain.ErrStudentNotFound, "Failed to fetch student")
		return
	}

	student, err := h.directoryService.GetStudent(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to fetch student")
		return
	}
	writeJSON(w, http.StatusOK, studentProfile{Student: student, Consultations: nonNil(student.Consultations)})
}
