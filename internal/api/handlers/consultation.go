package handlers

import (
	"net/http"
	"time"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/dom/tutoring-scheduler/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ConsultationHandler struct {
	consultationService *service.ConsultationService
}

func NewConsultationHandler(consultationService *service.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{consultationService: consultationService}
}

type CreateConsultationRequest struct {
	TutorID   string `json:"tutorId" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
	Reason    string `json:"reason" validate:"required,max=1000"`
	StartTime string `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"endTime" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type CreateLocalConsultationRequest struct {
	TutorID        string `json:"tutorId" validate:"required"`
	StudentID      string `json:"studentId" validate:"required"`
	Reason         string `json:"reason" validate:"required,max=1000"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime        string `json:"endTime" validate:"omitempty,datetime=15:04"`
	TimezoneOffset *int   `json:"timezoneOffset" validate:"required,min=-840,max=840"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING COMPLETED"`
}

func (h *ConsultationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, domain.ErrConsultationNotFound, "Failed to fetch consultation")
		return
	}

	consultation, err := h.consultationService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to fetch consultation")
		return
	}

	writeJSON(w, http.StatusOK, consultation)
}

// List accepts optional from and to query parameters in RFC 3339.
func (h *ConsultationHandler) List(w http.ResponseWriter, r *http.Request) {
	from, ok := queryTime(r, "from")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid from date")
		return
	}
	to, ok := queryTime(r, "to")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid to date")
		return
	}

	consultations, err := h.consultationService.List(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err, "Failed to fetch consultations")
		return
	}
	if consultations == nil {
		consultations = []*domain.Consultation{}
	}

	writeJSON(w, http.StatusOK, consultations)
}

func (h *ConsultationHandler) Next(w http.ResponseWriter, r *http.Request) {
	consultation, err := h.consultationService.Next(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch consultation")
		return
	}

	writeJSON(w, http.StatusOK, consultation)
}

func (h *ConsultationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateConsultationRequest
	if !decode(r, &req) {
		writeMessage(w, http.StatusBadRequest, malformedPayload)
		return
	}

	tutorID, studentID, ok := parseParticipants(req.TutorID, req.StudentID)
	if !ok {
		writeMessage(w, http.StatusBadRequest, malformedPayload)
		return
	}

	input := service.CreateConsultationInput{
		TutorID:   tutorID,
		StudentID: studentID,
		Reason:    req.Reason,
	}
	start, err := parseTime(req.StartTime)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, malformedPayload)
		return
	}
	input.StartTime = start
	if req.EndTime != "" {
		end, err := parseTime(req.EndTime)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, malformedPayload)
			return
		}
		input.EndTime = &end
	}

	consultation, err := h.consultationService.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err, "Failed to create consultation")
		return
	}

	writeJSON(w, http.StatusCreated, consultation)
}

// CreateLocal books a consultation from a date and wall-clock times in the
// caller's timezone.
func (h *ConsultationHandler) CreateLocal(w http.ResponseWriter, r *http.Request) {
	var req CreateLocalConsultationRequest
	if !decode(r, &req) {
		writeMessage(w, http.StatusBadRequest, malformedPayload)
		return
	}

	tutorID, studentID, ok := parseParticipants(req.TutorID, req.StudentID)
	if !ok {
		writeMessage(w, http.StatusBadRequest, malformedPayload)
		return
	}

	consultation, err := h.consultationService.CreateFromLocal(r.Context(), service.LocalConsultationInput{
		TutorID:        tutorID,
		StudentID:      studentID,
		Reason:         req.Reason,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		TimezoneOffset: *req.TimezoneOffset,
	})
	if err != nil {
		writeError(w, r, err, "Failed to create consultation")
		return
	}

	writeJSON(w, http.StatusCreated, consultation)
}

func (h *ConsultationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !decode(r, &req) {
		writeMessage(w, http.StatusBadRequest, malformedPayload)
		return
	}

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, domain.ErrConsultationNotFound, "Failed to update consultation")
		return
	}

	consultation, err := h.consultationService.UpdateStatus(r.Context(), id, domain.ConsultationStatus(req.Status))
	if err != nil {
		writeError(w, r, err, "Failed to update consultation")
		return
	}

	writeJSON(w, http.StatusOK, consultation)
}

func queryTime(r *http.Request, key string) (*time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	t, err := parseTime(raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// parseParticipants accepts ids in any case, as path ids are.
func parseParticipants(rawTutor, rawStudent string) (tutorID, studentID uuid.UUID, ok bool) {
	if tutorID, ok = parseID(rawTutor); !ok {
		return uuid.Nil, uuid.Nil, false
	}
	if studentID, ok = parseID(rawStudent); !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return tutorID, studentID, true
}
