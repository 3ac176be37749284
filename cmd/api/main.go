package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/staffport/attendance-backend-go/internal/config"
	"github.com/staffport/attendance-backend-go/internal/domain/notification"
	"github.com/staffport/attendance-backend-go/internal/fixtures"
	appHTTP "github.com/staffport/attendance-backend-go/internal/handler/http"
	"github.com/staffport/attendance-backend-go/internal/pkg/cron"
	"github.com/staffport/attendance-backend-go/internal/pkg/database"
	"github.com/staffport/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffport/attendance-backend-go/internal/pkg/mailer"
	"github.com/staffport/attendance-backend-go/internal/pkg/whatsapp"
	"github.com/staffport/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffport/attendance-backend-go/internal/service/attendance"
	authService "github.com/staffport/attendance-backend-go/internal/service/auth"
	notificationService "github.com/staffport/attendance-backend-go/internal/service/notification"
	reportService "github.com/staffport/attendance-backend-go/internal/service/report"
	userService "github.com/staffport/attendance-backend-go/internal/service/user"
	webauthnService "github.com/staffport/attendance-backend-go/internal/service/webauthn"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	err = postgresql.WithTransaction(context.Background(), db, func(txCtx context.Context) error {
		return fixtures.EnsureDefaultAdmin(txCtx, userRepo, cfg.App.AdminPassword)
	})
	if err != nil {
		fmt.Println("Error seeding admin account:", err)
		return
	}
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	webauthnRepo := postgresql.NewWebAuthnCredentialRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var channels []notification.DeliveryChannel
	if cfg.Twilio.AccountSID != "" {
		channels = append(channels, whatsapp.New(cfg.Twilio))
	}
	if cfg.SMTP.Host != "" {
		channels = append(channels, mailer.New(cfg.SMTP))
	}

	dispatcher := notificationService.NewDispatcher(notificationRepo, userRepo, channels, slog.Default())
	ledgerSvc := attendanceService.NewLedgerService(attendanceRepo, userRepo, database.DefaultRetryPolicy)
	authSvc := authService.NewAuthService(userRepo, jwtService)
	userSvc := userService.NewUserService(userRepo)
	reportSvc := reportService.NewReportService(attendanceRepo)
	webauthnSvc := webauthnService.NewWebAuthnService(webauthnRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, ledgerSvc, userSvc, dispatcher)
	attendanceHandler := appHTTP.NewAttendanceHandler(ledgerSvc, notificationRepo)
	adminHandler := appHTTP.NewAdminHandler(userSvc, ledgerSvc, reportSvc)
	webauthnHandler := appHTTP.NewWebAuthnHandler(webauthnSvc)

	scheduler := cron.NewScheduler()
	if cfg.Reminder.Enabled {
		reminderJobs := cron.NewReminderJobs(ledgerSvc, dispatcher, userRepo)
		scheduler.AddJob("absentee-reminder", cfg.Reminder.Interval, reminderJobs.RemindAbsentees)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(cfg, jwtService, authHandler, attendanceHandler, adminHandler, webauthnHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		slog.Info("Server running", "addr", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down")
	_ = server.Close()
}
