package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/deepanshusingla076/quiz-master/internal/api/http"
	"github.com/deepanshusingla076/quiz-master/internal/attempt"
	auth "github.com/deepanshusingla076/quiz-master/internal/auth/middleware"
	"github.com/deepanshusingla076/quiz-master/internal/config"
	"github.com/deepanshusingla076/quiz-master/internal/db"
	"github.com/deepanshusingla076/quiz-master/internal/grading"
	"github.com/deepanshusingla076/quiz-master/internal/leaderboard"
	"github.com/deepanshusingla076/quiz-master/internal/quizbank"
	"github.com/deepanshusingla076/quiz-master/internal/rbac"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := attempt.NewSQLStore(dbh, cfg.DBDriver)

	// --- Collaborators ---
	quizzes := quizbank.New(quizbank.Config{
		BaseURL: cfg.QuizBankURL,
		Timeout: cfg.QuizBankTimeout,
	})

	var notifier leaderboard.Notifier
	switch cfg.NotifierDriver {
	case "http":
		notifier = leaderboard.NewHTTPNotifier(cfg.LeaderboardURL, 3*time.Second)
	case "off":
		notifier = leaderboard.NopNotifier{}
	default:
		notifier = leaderboard.NewEventLogNotifier(dbh, "local")
	}

	svc := attempt.NewService(store, quizzes, grading.NewDefaultGrader(), notifier)

	// --- Auth (gateway headers; local JWT for offline/dev) ---
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", auth.HeaderUserID, auth.HeaderUserRole, auth.HeaderEmail},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))
	}

	// Protected API (identity → typed role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.IdentityExtractor(authSvc, cfg.EnableLocalAuth))

		// Student flow
		pr.With(rbac.Require("attempt:start")).
			Post("/attempts/start/{quizId}", api.StartAttemptHandler(svc))
		pr.With(rbac.Require("attempt:submit")).
			Post("/attempts/submit", api.SubmitAttemptHandler(svc))
		pr.With(rbac.Require("attempt:view-own")).
			Get("/attempts/student", api.ListStudentAttemptsHandler(svc))
		pr.With(rbac.Require("attempt:view-own")).
			Get("/attempts/student/{quizId}/answers", api.StudentAnswersHandler(svc))

		// Teacher dashboards
		pr.With(rbac.Require("attempt:view-all")).
			Get("/attempts/quiz/{quizId}", api.ListQuizAttemptsHandler(svc))
		pr.With(rbac.Require("attempt:view-all")).
			Get("/attempts/quiz/{quizId}/group/{groupSection}", api.ListQuizAttemptsHandler(svc))

		// Result visibility
		pr.With(rbac.Require("results:publish")).
			Post("/results/publish/{quizId}", api.PublishResultsHandler(svc, true))
		pr.With(rbac.Require("results:publish")).
			Post("/results/unpublish/{quizId}", api.PublishResultsHandler(svc, false))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, quizbank=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.QuizBankURL)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
