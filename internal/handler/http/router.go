package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/paneldesk/timetrack-backend-go/internal/config"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/user"
	"github.com/paneldesk/timetrack-backend-go/internal/handler/http/middleware"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/authcache"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	Config     *config.Config
	JWTService jwt.Service
	TokenCache *authcache.TokenCache
	UserCache  *authcache.UserCache
	UserRepo   user.UserRepository

	AuthHandler    AuthHandler
	SessionHandler SessionHandler
	LeaveHandler   LeaveHandler
	UserHandler    UserHandler
	MeHandler      MeHandler
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timetrack"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Config.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Config.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

	// Authenticated requests either go through the full verifier chain or,
	// in DISABLE_AUTH mode, resolve to the local admin account.
	authenticated := func(r chi.Router) {
		if deps.Config.App.DisableAuth {
			r.Use(middleware.AuthBypass(deps.UserCache, deps.UserRepo))
			return
		}
		r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(deps.JWTService, deps.TokenCache))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", deps.AuthHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", deps.AuthHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", deps.AuthHandler.LoginWithGoogle)
				})
			})

			// Logout revokes the presented access token, so it sits behind
			// the verifier.
			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Post("/logout", deps.AuthHandler.Logout)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			authenticated(r)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", deps.MeHandler.GetProfile)
				r.Get("/attendance", deps.MeHandler.GetAttendance)
				r.Patch("/weekoffs", deps.MeHandler.UpdateWeekoffs)
			})

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/clock-in", deps.SessionHandler.ClockIn)
				r.Post("/clock-out", deps.SessionHandler.ClockOut)
				r.Get("/active", deps.SessionHandler.GetActive)
				r.Get("/home", deps.SessionHandler.GetHome)
				r.Get("/", deps.SessionHandler.GetHistory)

				// Manager or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOnly)
					r.Post("/{id}/review", deps.SessionHandler.Approve)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", deps.LeaveHandler.Create)
				r.Get("/my", deps.LeaveHandler.ListMine)
				r.Get("/{id}", deps.LeaveHandler.Get)
				r.Put("/{id}", deps.LeaveHandler.Update)
				r.Delete("/{id}", deps.LeaveHandler.Delete)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", deps.LeaveHandler.ListAll)
					r.Post("/{id}/review", deps.LeaveHandler.Review)
				})
			})

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", deps.UserHandler.Search)
				r.Post("/", deps.UserHandler.Create)
				r.Post("/bulk", deps.UserHandler.BulkUpdate)
				r.Get("/kpi-cards", deps.UserHandler.KPICards)
				r.Get("/reporting-managers", deps.UserHandler.ReportingManagers)
				r.Get("/project-managers", deps.UserHandler.ProjectManagers)
				r.Get("/{id}", deps.UserHandler.Get)
				r.Put("/{id}", deps.UserHandler.Update)
				r.Delete("/{id}", deps.UserHandler.Deactivate)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return r
}
