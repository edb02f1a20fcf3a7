package main

import (
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"studenttrack/internal/config"
	"studenttrack/internal/database"
	"studenttrack/internal/handler"
	"studenttrack/internal/service"
	"studenttrack/internal/store"
)

func main() {
	config.Load()

	// Initialize database and store
	db := database.InitDB()
	st := store.NewStore(db)

	// Initialize services
	studentService := service.NewStudentService(st)
	attendanceService := service.NewAttendanceService(st)
	reportService := service.NewReportService(st)

	// Initialize handlers
	studentHandler := handler.NewStudentHandler(studentService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	reportHandler := handler.NewReportHandler(reportService)

	// Setup router
	r := mux.NewRouter()

	r.HandleFunc("/students", studentHandler.ListStudents).Methods("GET")
	r.HandleFunc("/students", studentHandler.AddStudent).Methods("POST")
	r.HandleFunc("/students/{id:[0-9]+}", studentHandler.GetStudent).Methods("GET")
	r.HandleFunc("/students/{id:[0-9]+}", studentHandler.DeleteStudent).Methods("DELETE")
	r.HandleFunc("/students/{id:[0-9]+}/grades", studentHandler.AddGrade).Methods("POST")

	r.HandleFunc("/attendance", attendanceHandler.MarkAttendance).Methods("POST")

	r.HandleFunc("/reports/class-average/{subject}", reportHandler.ClassAverage).Methods("GET")
	r.HandleFunc("/reports/subject-topper/{subject}", reportHandler.SubjectTopper).Methods("GET")
	r.HandleFunc("/export", reportHandler.ExportCSV).Methods("GET")
	r.HandleFunc("/api/chart-data", reportHandler.ChartData).Methods("GET")

	// Start server
	log.Println("Server running on port " + config.Port)
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{config.CORSOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	log.Fatal(http.ListenAndServe(":"+config.Port, cors(r)))
}
