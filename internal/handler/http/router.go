package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffport/attendance-backend-go/internal/config"
	"github.com/staffport/attendance-backend-go/internal/handler/http/middleware"
	"github.com/staffport/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	adminHandler AdminHandler,
	webauthnHandler WebAuthnHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-portal"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/auth/logout", authHandler.Logout)
			r.Post("/auth/change-password", authHandler.ChangePassword)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/today", attendanceHandler.GetToday)
				r.Get("/recent", attendanceHandler.GetRecent)
				r.Get("/summary", attendanceHandler.GetSummary)
				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Post("/leave", attendanceHandler.MarkLeave)
					r.Post("/remote", attendanceHandler.MarkRemote)
				})
			})

			r.Get("/notifications", attendanceHandler.MyNotifications)

			r.Route("/webauthn/credentials", func(r chi.Router) {
				r.Post("/", webauthnHandler.RegisterCredential)
				r.Get("/", webauthnHandler.ListCredentials)
				r.Post("/assert", webauthnHandler.RecordAssertion)
				r.Delete("/{id}", webauthnHandler.DeleteCredential)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/users", adminHandler.ListUsers)
				r.Put("/users/{id}", adminHandler.UpdateUser)
				r.Get("/departments", adminHandler.ListDepartments)
				r.Get("/attendance", adminHandler.DayAttendance)
				r.Put("/attendance/{id}", adminHandler.OverrideAttendance)
				r.Get("/absentees", adminHandler.Absentees)
				r.Get("/export", adminHandler.ExportCSV)
			})
		})
	})
	return r
}
