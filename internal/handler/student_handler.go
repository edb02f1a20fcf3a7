package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"studenttrack/internal/metrics"
	"studenttrack/internal/model"
	"studenttrack/internal/service"
)

type StudentHandler struct {
	studentService *service.StudentService
}

func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

type addStudentRequest struct {
	Name       string `json:"name" validate:"required"`
	RollNumber int    `json:"roll_number" validate:"required,min=1"`
}

type addGradeRequest struct {
	Subject string `json:"subject" validate:"required"`
	Score   *int   `json:"score" validate:"required,min=0,max=100"`
}

type addGradeResponse struct {
	Grade   *model.Grade     `json:"grade"`
	Insight *metrics.Insight `json:"insight"`
}

// ListStudents serves the overview: every student with derived numbers
// plus the attendance-marked-today flag.
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	overview, err := h.studentService.Overview()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *StudentHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	var req addStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, "name and a positive roll number are required")
		return
	}

	student, err := h.studentService.AddStudent(req.Name, req.RollNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	detail, err := h.studentService.Detail(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.studentService.DeleteStudent(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddGrade records a score and returns the grade together with the
// advisory the insight rules produced, if any.
func (h *StudentHandler) AddGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req addGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, "subject is required and score must be between 0 and 100")
		return
	}

	grade, insight, err := h.studentService.AddGrade(id, req.Subject, *req.Score)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, addGradeResponse{Grade: grade, Insight: insight})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeValidationError(w, "invalid student id")
		return 0, false
	}
	return uint(id), true
}
