package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"mindprofile/internal/service"
	"mindprofile/internal/transport/rest/handler"
	"mindprofile/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	CatalogService    *service.CatalogService
	AssessmentService *service.AssessmentService
	UserService       *service.UserService
	FeedbackService   *service.FeedbackService
	AdminService      *service.AdminService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	questionHandler := handler.NewQuestionHandler(c.CatalogService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	userHandler := handler.NewUserHandler(c.UserService)
	feedbackHandler := handler.NewFeedbackHandler(c.FeedbackService)
	reportHandler := handler.NewReportHandler(c.AdminService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Public routes
	r.HandleFunc("/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	r.HandleFunc("/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Session routes (any authenticated visitor)
	sessionRoutes := r.NewRoute().Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/test", assessmentHandler.Render).Methods("GET")
	sessionRoutes.HandleFunc("/test", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/api/questions-user", questionHandler.List).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/api/result", assessmentHandler.Result).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/api/feedback", feedbackHandler.Add).Methods("POST", "OPTIONS")

	// Admin routes (administrator capability required)
	adminRoutes := r.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/api/questions", questionHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/api/questions/add", questionHandler.Add).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/api/questions/update", questionHandler.Update).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/api/questions/delete", questionHandler.Delete).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/api/questions/import", questionHandler.Import).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/api/reports/{email}", reportHandler.Report).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/api/stats", reportHandler.Stats).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/api/users", userHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/api/users/create", userHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/api/users/update", userHandler.Update).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/api/users/delete", userHandler.Delete).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/api/users/disable", userHandler.Disable).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/api/users/promote", userHandler.Promote).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
