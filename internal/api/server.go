package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/promisekeeper/internal/detector"
	"github.com/MikeSquared-Agency/promisekeeper/internal/events"
	"github.com/MikeSquared-Agency/promisekeeper/internal/oauth"
	"github.com/MikeSquared-Agency/promisekeeper/internal/waitlist"
)

const maxBodyBytes = 1 << 20

// Detector finds commitments in chat messages and email threads.
type Detector interface {
	DetectChat(ctx context.Context, req detector.ChatRequest) ([]detector.CommitmentRecord, error)
	DetectThread(ctx context.Context, req detector.ThreadRequest) ([]detector.CommitmentRecord, error)
	Configured() bool
	Model() string
}

// Deps are the collaborators behind the HTTP routes. Events may be nil.
type Deps struct {
	Detector     Detector
	Basecamp     *oauth.BasecampClient
	Waitlist     *waitlist.Service
	Events       events.Publisher
	AppURLScheme string
	Logger       *slog.Logger
}

type Server struct {
	router *chi.Mux
	http   *http.Server
	port   int

	detector  Detector
	basecamp  *oauth.BasecampClient
	waitlist  *waitlist.Service
	events    events.Publisher
	appScheme string
	logger    *slog.Logger
}

func NewServer(port int, deps Deps) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		port:      port,
		detector:  deps.Detector,
		basecamp:  deps.Basecamp,
		waitlist:  deps.Waitlist,
		events:    deps.Events,
		appScheme: deps.AppURLScheme,
		logger:    deps.Logger,
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Get("/health", s.health)
	router.Get("/api/status", s.status)

	router.Route("/api/openai", func(r chi.Router) {
		r.Post("/", s.detectChat)
		r.Post("/gmail", s.detectThread)
	})

	router.Route("/api/basecamp", func(r chi.Router) {
		r.Get("/auth", s.basecampAuth)
		r.Post("/token", s.basecampToken)
		r.Post("/refresh", s.basecampRefresh)
		r.Get("/callback", s.basecampCallback)
	})

	router.Get("/api/slack/callback", s.slackCallback)
	router.Post("/api/waitlist", s.joinWaitlist)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":           "promisekeeper",
		"model":             s.detector.Model(),
		"openai_configured": s.detector.Configured(),
	})
}

// publish sends an event when a publisher is configured. Failures are only
// logged.
func (s *Server) publish(ctx context.Context, subject string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, data); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", "subject", subject, "error", err)
	}
}
