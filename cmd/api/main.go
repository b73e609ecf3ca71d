package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/trainhub/trainhub-backend-go/internal/config"
	appHTTP "github.com/trainhub/trainhub-backend-go/internal/handler/http"
	"github.com/trainhub/trainhub-backend-go/internal/pkg/database"
	"github.com/trainhub/trainhub-backend-go/internal/pkg/jwt"
	"github.com/trainhub/trainhub-backend-go/internal/pkg/oauth"
	"github.com/trainhub/trainhub-backend-go/internal/repository/postgresql"
	attendanceService "github.com/trainhub/trainhub-backend-go/internal/service/attendance"
	authService "github.com/trainhub/trainhub-backend-go/internal/service/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := authService.NewAuthService(db, userRepo, JWTService, refreshTokenRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, attendanceService.Config{
		RecentBreakEntries: cfg.Attendance.RecentBreakEntries,
		RecentBreakWindow:  time.Duration(cfg.Attendance.RecentBreakDays) * 24 * time.Hour,
		WeeklyBreakLimit:   cfg.Attendance.WeeklyBreakLimit,
	})

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		attendanceHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
