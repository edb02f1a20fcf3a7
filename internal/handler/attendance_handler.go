package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"studenttrack/internal/service"
)

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

type markAttendanceRequest struct {
	// Date in YYYY-MM-DD form; empty means today.
	Date    string                    `json:"date"`
	Entries []service.AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// MarkAttendance records a whole day's attendance in one submission, the
// way the daily register is filled in. Already-marked students are
// updated in place.
func (h *AttendanceHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req markAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, "entries are required and each status must be Present or Absent")
		return
	}

	day := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeValidationError(w, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	if err := h.attendanceService.MarkDay(day, req.Entries); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "marked",
		"date":   day.Format("2006-01-02"),
		"count":  len(req.Entries),
	})
}
