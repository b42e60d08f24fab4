package routers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Priyan1011/remote-interview-platform/internal/handlers"
	"github.com/Priyan1011/remote-interview-platform/internal/metrics"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Sessions   *handlers.SessionHandler
	Collab     *handlers.CollabHandler
	Executions *handlers.ExecutionHandler
	Interviews *handlers.InterviewHandler
	Comments   *handlers.CommentHandler
	Questions  *handlers.QuestionHandler
}

func New(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handlers.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)
		r.Get("/auth/me", h.Auth.Me)

		r.Post("/execute", h.Executions.Execute)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.Sessions.Get)
			r.Put("/code", h.Sessions.PutCode)
			r.Put("/language", h.Sessions.PutLanguage)
			r.Put("/question", h.Sessions.PutQuestion)
			r.Post("/run", h.Executions.Run)
			r.Get("/executions", h.Executions.History)
		})

		r.Route("/interviews", func(r chi.Router) {
			r.Post("/", h.Interviews.Create)
			r.Get("/", h.Interviews.List)
			r.Get("/by-call/{callId}", h.Interviews.GetByStreamCall)
			r.Get("/{id}", h.Interviews.Get)
			r.Put("/{id}/status", h.Interviews.UpdateStatus)
			r.Put("/{id}/result", h.Interviews.UpdateResult)
			r.Post("/{id}/comments", h.Comments.Add)
			r.Get("/{id}/comments", h.Comments.List)
		})
		r.Get("/candidates/{candidateId}/dashboard", h.Interviews.Dashboard)

		r.Get("/questions", h.Questions.List)
		r.Get("/questions/{id}", h.Questions.Get)
	})

	r.Get("/ws/session/{id}", h.Collab.CollabWS)

	return r
}

func allowedOrigins() []string {
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		return strings.Split(v, ",")
	}
	return []string{"http://localhost:5173"}
}
