package handler

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"studenttrack/internal/metrics"
	"studenttrack/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ClassAverage reports the subject-wide mean. A subject with no grades is
// an explicit no-data payload, never a numeric zero.
func (h *ReportHandler) ClassAverage(w http.ResponseWriter, r *http.Request) {
	subject := mux.Vars(r)["subject"]

	average, err := h.reportService.ClassAverage(subject)
	if errors.Is(err, metrics.ErrNoData) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"subject": subject,
			"no_data": true,
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"subject":       subject,
		"class_average": average,
	})
}

func (h *ReportHandler) SubjectTopper(w http.ResponseWriter, r *http.Request) {
	subject := mux.Vars(r)["subject"]

	topper, err := h.reportService.SubjectTopper(subject)
	if errors.Is(err, metrics.ErrNoData) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"subject": subject,
			"no_data": true,
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topper)
}

// ExportCSV serves the backup file. The CSV is built in memory first so
// a store failure surfaces as an error response instead of a truncated
// download with a success status.
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.reportService.ExportCSV(&buf); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment;filename=student_backup.csv")
	if _, err := buf.WriteTo(w); err != nil {
		log.Println("Error writing CSV export:", err)
	}
}

func (h *ReportHandler) ChartData(w http.ResponseWriter, r *http.Request) {
	data, err := h.reportService.ChartData()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
