package http

import (
	"log/slog"
	"os"

	"github.com/clevelandclean/payroll-backend-go/internal/config"
	"github.com/clevelandclean/payroll-backend-go/internal/domain/user"
	"github.com/clevelandclean/payroll-backend-go/internal/handler/http/middleware"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, userRepo user.Repository, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "clevelandclean-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		// Every payroll operation requires an authenticated caller whose
		// profile carries an elevated role; the check happens here, before
		// any payroll collection is touched.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			r.Use(middleware.RequireElevated(userRepo))

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/scan", payrollHandler.Scan)
				r.Post("/generate", payrollHandler.Generate)
				r.Post("/backfill", payrollHandler.Backfill)

				r.Route("/runs", func(r chi.Router) {
					r.Post("/", payrollHandler.CreateRun)
					r.Post("/recalc", payrollHandler.RecalcRun)
					r.Post("/approve", payrollHandler.ApproveTimesheets)
					r.Get("/{id}", payrollHandler.GetRun)
				})
			})
		})
	})

	return r
}
