package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/avatar"
	"github.com/goliatone/go-portfolio/pkg/catalog"
	"github.com/goliatone/go-portfolio/pkg/editor"
	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/metrics"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/render/template"
	"github.com/goliatone/go-portfolio/pkg/render/template/gotemplate"
	"github.com/goliatone/go-portfolio/pkg/shell"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Config holds server configuration.
type Config struct {
	Addr            string
	DefaultTemplate string
	MaxImageBytes   int64
	CORSOrigins     []string
}

// Option customises a Server.
type Option func(*Server)

// WithCatalog sets the template catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Server) {
		s.catalog = c
	}
}

// WithProfile seeds the editor.
func WithProfile(p profile.Profile) Option {
	return func(s *Server) {
		s.initial = p
	}
}

// WithMetrics sets the metrics sink served on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server is the portfolio editor backend.
type Server struct {
	cfg     Config
	catalog *catalog.Catalog
	initial profile.Profile
	metrics *metrics.Metrics
	logger  *slog.Logger

	// mu serialises every operation on shell.
	mu    sync.Mutex
	shell *shell.Shell

	hub        *hub
	pages      template.TemplateRenderer
	router     chi.Router
	httpServer *http.Server
}

// New wires the editor, orchestrator, exporter and shell behind a chi router.
func New(cfg Config, options ...Option) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		initial: profile.New(),
		logger:  logging.Discard(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.cfg.MaxImageBytes <= 0 {
		s.cfg.MaxImageBytes = avatar.DefaultMaxBytes
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	s.hub = newHub(s.logger)

	orch := orchestrator.New(
		orchestrator.WithCatalog(s.catalog),
		orchestrator.WithObserver(func(evt orchestrator.Event) {
			if evt.Err == nil {
				s.metrics.IncRender(evt.Renderer)
			}
		}),
	)
	exporter, err := export.New(
		export.WithOrchestrator(orch),
		export.WithObserver(func(o export.Outcome) {
			s.metrics.IncExport(o.Err)
			if o.Err != nil {
				s.logger.Warn("export failed", slog.String("template", o.Template), slog.Any("error", o.Err))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	ed := editor.New(s.initial)
	s.shell, err = shell.New(
		shell.WithEditor(ed),
		shell.WithOrchestrator(orch),
		shell.WithExporter(exporter),
		shell.WithTemplate(cfg.DefaultTemplate),
		shell.WithNotifier(shell.NotifierFunc(func(n shell.Notice) {
			s.hub.broadcast(noticeMessage{Type: "notice", Notice: n})
		})),
		shell.WithNavigator(shell.NavigatorFunc(func(v shell.View) {
			s.hub.broadcast(viewMessage{Type: "view", View: v})
		})),
		shell.WithLogger(s.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	ed.Subscribe(func(profile.Profile) {
		s.broadcastPreview()
	})

	pagesFS, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("server: templates: %w", err)
	}
	s.pages, err = gotemplate.New(gotemplate.WithFS(pagesFS), gotemplate.WithExtension(".tmpl"))
	if err != nil {
		return nil, fmt.Errorf("server: page engine: %w", err)
	}

	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Get("/", s.handleIndex)
	r.Get("/preview", s.handlePreview)
	r.Get("/preview.json", s.handlePreviewJSON)
	r.Get("/download", s.handleDownload)
	r.Get("/ws", s.handleWebSocket)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(stylesheets()))))

	r.Route("/api", func(r chi.Router) {
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handlePutProfile)
		r.Post("/profile/fields", s.handleUpdateField)
		r.Post("/profile/image", s.handleUploadImage)
		r.Delete("/profile/image", s.handleClearImage)
		r.Post("/profile/{section}", s.handleAddEntry)
		r.Delete("/profile/{section}/{index}", s.handleRemoveEntry)

		r.Get("/templates", s.handleListTemplates)
		r.Put("/template", s.handleSelectTemplate)
		r.Put("/view", s.handleNavigate)
		r.Post("/generate", s.handleGenerate)
	})

	return r
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("portfolio server listening", slog.String("addr", s.cfg.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server and disconnects websocket
// clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.closeAll()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// broadcastPreview pushes the current preview. Callers hold s.mu or run
// inside an editor observer triggered under it.
func (s *Server) broadcastPreview() {
	msg, err := s.previewSnapshot()
	if err != nil {
		s.logger.Error("preview render", slog.Any("error", err))
		return
	}
	s.hub.broadcast(msg)
}

func (s *Server) previewSnapshot() (previewMessage, error) {
	html, err := s.shell.Preview(context.Background(), "")
	if err != nil {
		return previewMessage{}, err
	}
	return previewMessage{
		Type:     "preview",
		HTML:     string(html),
		View:     render.BuildView(s.shell.Profile()),
		Template: s.shell.Template().ID,
		Variant:  s.shell.Variant(),
	}, nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
