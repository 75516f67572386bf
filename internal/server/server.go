package server

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vidgate/vidgate/internal/auth"
	"github.com/vidgate/vidgate/internal/database"
	"github.com/vidgate/vidgate/internal/gate"
	"github.com/vidgate/vidgate/internal/landing"
	"github.com/vidgate/vidgate/internal/page"
	"github.com/vidgate/vidgate/internal/upload"
)

const defaultPageCacheTTL = 30 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	DB               database.DBTX
	Pinger           Pinger
	Storage          upload.ObjectStorage
	WebFS            fs.FS
	JWTSecret        string
	BaseURL          string
	MaxUploadBytes   int64
	S3PublicEndpoint string
	ResetPolicy      gate.Policy
	ProgressLabel    bool
	PageCacheTTL     time.Duration
}

type Server struct {
	router         chi.Router
	pinger         Pinger
	authHandler    *auth.Handler
	pageHandler    *page.Handler
	landingHandler *landing.Handler
	uploadHandler  *upload.Handler
	webFS          fs.FS
}

func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(slogMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders(SecurityConfig{
		BaseURL:         cfg.BaseURL,
		StorageEndpoint: cfg.S3PublicEndpoint,
	}))

	s := &Server{router: r, pinger: cfg.Pinger, webFS: cfg.WebFS}

	if cfg.DB != nil {
		jwtSecret := cfg.JWTSecret
		if jwtSecret == "" {
			log.Fatal("JWT_SECRET is required; set the environment variable")
		}

		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:8080"
		}

		cacheTTL := cfg.PageCacheTTL
		if cacheTTL <= 0 {
			cacheTTL = defaultPageCacheTTL
		}

		secureCookies := strings.HasPrefix(baseURL, "https://")
		pages := page.NewRepository(cfg.DB, cacheTTL)
		engine := gate.NewEngine(gate.NewLabeler(cfg.ProgressLabel))

		s.authHandler = auth.NewHandler(cfg.DB, jwtSecret, secureCookies)
		s.pageHandler = page.NewHandler(pages)
		s.landingHandler = landing.NewHandler(pages, engine, cfg.ResetPolicy, baseURL)
		if cfg.Storage != nil {
			s.uploadHandler = upload.NewHandler(cfg.Storage, cfg.MaxUploadBytes)
		}
	}

	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)

	if s.landingHandler != nil {
		s.router.Get("/", s.landingHandler.Page)
		s.router.Get("/p/{slug}", s.landingHandler.Page)
		s.router.Get("/p/{slug}/click", s.landingHandler.Click)
		s.router.Get("/api/go", s.landingHandler.Go)
		s.router.Get("/api/open", s.landingHandler.Open)
		s.router.Get("/api/content", s.pageHandler.Content)
	}

	if s.authHandler != nil {
		s.router.Route("/api/auth", func(r chi.Router) {
			r.Post("/login", s.authHandler.Login)
			r.Post("/refresh", s.authHandler.Refresh)
			r.Post("/logout", s.authHandler.Logout)
		})

		s.router.Route("/api/pages", func(r chi.Router) {
			r.Use(s.authHandler.Middleware)
			r.Get("/", s.pageHandler.List)
			r.Post("/", s.pageHandler.Create)
			r.Put("/{id}", s.pageHandler.Update)
			r.Delete("/{id}", s.pageHandler.Delete)
		})
	}

	if s.uploadHandler != nil {
		s.router.Route("/api/upload", func(r chi.Router) {
			r.Use(s.authHandler.Middleware)
			r.Post("/sign", s.uploadHandler.Sign)
			r.Post("/delete", s.uploadHandler.Delete)
		})
	}

	if s.webFS != nil {
		spa := http.StripPrefix(adminPrefix, newSPAFileServer(s.webFS))
		s.router.Get(adminPrefix, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, adminPrefix+"/", http.StatusMovedPermanently)
		})
		s.router.Handle(adminPrefix+"/*", spa)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy","error":"database unreachable"}`))
			return
		}
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
