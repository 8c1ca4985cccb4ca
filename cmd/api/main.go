package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/paneldesk/timetrack-backend-go/internal/config"
	appHTTP "github.com/paneldesk/timetrack-backend-go/internal/handler/http"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/authcache"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/cron"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/database"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/email"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/jwt"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/oauth"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/timeutil"
	"github.com/paneldesk/timetrack-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/paneldesk/timetrack-backend-go/internal/service/auth"
	leaveService "github.com/paneldesk/timetrack-backend-go/internal/service/leave"
	sessionService "github.com/paneldesk/timetrack-backend-go/internal/service/session"
	userService "github.com/paneldesk/timetrack-backend-go/internal/service/user"
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

	clock, err := timeutil.NewClock(cfg.Org.Timezone)
	if err != nil {
		log.Fatal("Invalid organization timezone: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	metricsRepo := postgresql.NewMetricsRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	tokenCache := authcache.NewTokenCache()
	userCache := authcache.NewUserCache()

	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, GoogleService, tokenCache)
	sessionSvc := sessionService.NewSessionService(db, sessionRepo, attendanceRepo, projectRepo, userRepo, metricsRepo, emailService, clock)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, attendanceRepo, userRepo, sessionRepo, projectRepo, emailService)
	userSvc := userService.NewUserService(db, userRepo, clock, cfg.Org.NotAllocatedProjectID)

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(sessionRepo, attendanceRepo, clock, db).RegisterJobs(scheduler)
	scheduler.AddJob("purge_token_cache", authcache.TokenTTL, func(ctx context.Context) error {
		tokenCache.Purge()
		return nil
	})
	scheduler.Start()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		Config:     cfg,
		JWTService: JWTService,
		TokenCache: tokenCache,
		UserCache:  userCache,
		UserRepo:   userRepo,

		AuthHandler:    appHTTP.NewAuthHandler(JWTService, authService),
		SessionHandler: appHTTP.NewSessionHandler(sessionSvc),
		LeaveHandler:   appHTTP.NewLeaveHandler(leaveSvc),
		UserHandler:    appHTTP.NewUserHandler(userSvc),
		MeHandler:      appHTTP.NewMeHandler(userSvc, sessionSvc),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
