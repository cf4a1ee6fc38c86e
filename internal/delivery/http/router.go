package http

import (
	"net/http"

	"therapy-booking/internal/delivery/http/handler"
	"therapy-booking/internal/delivery/http/middleware"
	"therapy-booking/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	therapistHandler   *handler.TherapistHandler
	appointmentHandler *handler.AppointmentHandler
	adminHandler       *handler.AdminHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	therapistHandler *handler.TherapistHandler,
	appointmentHandler *handler.AppointmentHandler,
	adminHandler *handler.AdminHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		userHandler:        userHandler,
		therapistHandler:   therapistHandler,
		appointmentHandler: appointmentHandler,
		adminHandler:       adminHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/verify-email/{token}", r.authHandler.VerifyEmail).Methods(http.MethodGet)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Public therapist directory
	api.HandleFunc("/therapists", r.therapistHandler.ListTherapists).Methods(http.MethodGet)
	api.HandleFunc("/therapists/{id}", r.therapistHandler.GetTherapist).Methods(http.MethodGet)

	// Own profile (any authenticated user)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.Use(middleware.RequirePermission(entity.OpUpdateOwnProfile))
	users.HandleFunc("/profile", r.userHandler.GetProfile).Methods(http.MethodGet)
	users.HandleFunc("/profile", r.userHandler.UpdateProfile).Methods(http.MethodPut)

	// Therapist self-service
	therapistSelf := api.PathPrefix("/therapists").Subrouter()
	therapistSelf.Use(r.authMiddleware.Authenticate)
	therapistSelf.Handle("/profile",
		middleware.RequirePermission(entity.OpUpdateTherapistProfile)(http.HandlerFunc(r.therapistHandler.UpdateProfile))).Methods(http.MethodPut)
	therapistSelf.Handle("/availability",
		middleware.RequirePermission(entity.OpSetAvailability)(http.HandlerFunc(r.therapistHandler.SetAvailability))).Methods(http.MethodPut)

	// Patient reviews
	reviews := api.PathPrefix("/therapists/{id}/reviews").Subrouter()
	reviews.Use(r.authMiddleware.Authenticate)
	reviews.Use(middleware.RequirePermission(entity.OpCreateReview))
	reviews.HandleFunc("", r.therapistHandler.CreateReview).Methods(http.MethodPost)

	// Appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Handle("",
		middleware.RequirePermission(entity.OpBookAppointment)(http.HandlerFunc(r.appointmentHandler.BookAppointment))).Methods(http.MethodPost)
	appointments.Handle("",
		middleware.RequirePermission(entity.OpViewAppointments)(http.HandlerFunc(r.appointmentHandler.GetMyAppointments))).Methods(http.MethodGet)
	appointments.Handle("/{id}",
		middleware.RequirePermission(entity.OpViewAppointments)(http.HandlerFunc(r.appointmentHandler.GetAppointmentDetails))).Methods(http.MethodGet)
	appointments.Handle("/{id}/status",
		middleware.RequirePermission(entity.OpUpdateAppointmentStatus)(http.HandlerFunc(r.appointmentHandler.UpdateStatus))).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/dashboard", r.adminHandler.GetDashboardStats).Methods(http.MethodGet)
	admin.HandleFunc("/users", r.adminHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.adminHandler.ManageUser).Methods(http.MethodPut)
	admin.HandleFunc("/therapists/{id}/verify", r.adminHandler.VerifyTherapist).Methods(http.MethodPut)
	admin.HandleFunc("/reports", r.adminHandler.GenerateReport).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
