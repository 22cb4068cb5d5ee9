package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/vbonduro/trailplan/internal/catalog"
	"github.com/vbonduro/trailplan/internal/domain"
	"github.com/vbonduro/trailplan/internal/fare"
	"github.com/vbonduro/trailplan/internal/service"
)

// catalogStatus is the subset of catalog.Live the admin page reports on.
type catalogStatus interface {
	Current() *catalog.Catalog
	Status() catalog.Status
}

type Server struct {
	checklists *service.ChecklistService
	trips      *service.TripService
	catalog    catalogStatus
	templates  embed.FS
	mux        *http.ServeMux
	tmplFuncs  template.FuncMap
	logger     *slog.Logger

	mu     sync.Mutex
	parsed map[string]*template.Template
}

func NewServer(checklists *service.ChecklistService, trips *service.TripService, cat catalogStatus, tmpl embed.FS, logger *slog.Logger) *Server {
	s := &Server{
		checklists: checklists,
		trips:      trips,
		catalog:    cat,
		templates:  tmpl,
		mux:        http.NewServeMux(),
		logger:     logger,
		parsed:     make(map[string]*template.Template),
		tmplFuncs: template.FuncMap{
			"yen":      fare.Format,
			"jpdate":   func(t time.Time) string { return t.Format("2006年1月2日") },
			"isActive": isActive,
			"inc":      func(i int) int { return i + 1 },
			"sub":      func(a, b int) int { return a - b },
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /plans", s.handleListPlans)
	s.mux.HandleFunc("GET /plans/{id}", s.handleGetPlan)
	s.mux.HandleFunc("GET /mountains", s.handleListMountains)
	s.mux.HandleFunc("GET /mountains/{id}", s.handleGetMountain)
	s.mux.HandleFunc("GET /equipment", s.handleEquipment)
	s.mux.HandleFunc("POST /equipment/toggle/{id}", s.handleToggle)
	s.mux.HandleFunc("POST /equipment/check-all", s.handleCheckAll)
	s.mux.HandleFunc("POST /equipment/clear", s.handleClear)
	s.mux.HandleFunc("GET /api/checklist", s.handleAPIChecklist)
	s.mux.HandleFunc("GET /admin", s.handleAdmin)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
}

type navItem struct {
	Href  string
	Label string
	Icon  string
}

var navItems = []navItem{
	{Href: "/", Label: "ホーム", Icon: "🏠"},
	{Href: "/plans", Label: "計画", Icon: "📋"},
	{Href: "/mountains", Label: "山情報", Icon: "⛰️"},
	{Href: "/equipment", Label: "装備", Icon: "🎒"},
	{Href: "/admin", Label: "管理", Icon: "⚙️"},
}

// isActive reports whether the nav entry href is the current page. The home
// entry matches only itself; every other entry also matches its subpaths.
func isActive(path, href string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

// securityHeaders sets the browser hardening headers on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' https: data:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger logs one line per request. Server errors log at error level
// and client errors at warn.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		switch {
		case rec.status >= 500:
			level = slog.LevelError
		case rec.status >= 400:
			level = slog.LevelWarn
		}
		logger.LogAttrs(r.Context(), level, "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.String("session", shortSession(sessionID(r))),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

// shortSession keeps log lines correlatable without writing whole session
// ids to the log.
func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withSession(requestLogger(s.logger, securityHeaders(s.mux))).ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// page adds the layout fields every full page needs.
func page(r *http.Request, title string, data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	data["Title"] = title
	data["Path"] = r.URL.Path
	data["Nav"] = navItems
	return data
}

// parse returns the template set for files, parsing it on first use.
func (s *Server) parse(files ...string) (*template.Template, error) {
	key := strings.Join(files, "|")

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.parsed[key]; ok {
		return t, nil
	}
	t, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	s.parsed[key] = t
	return t, nil
}

// renderPage executes the "base" layout of a full-page template set. The
// page is rendered into a buffer so a failing template never leaves a half
// written response.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	tmpl, err := s.parse(files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	return s.write(w, tmpl, "base", data)
}

// renderPartial executes the single {{define}} block of file.
func (s *Server) renderPartial(w http.ResponseWriter, file string, data any) error {
	tmpl, err := s.parse(file)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	name := path.Base(file)
	for _, t := range tmpl.Templates() {
		if n := t.Name(); n != "" && n != name {
			name = n
			break
		}
	}
	return s.write(w, tmpl, name, data)
}

func (s *Server) write(w http.ResponseWriter, tmpl *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// serviceError maps a service error to a response. Unknown ids are 404.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, service.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	http.Error(w, msg, http.StatusInternalServerError)
	s.logger.Error(msg, "path", r.URL.Path, "error", err)
}

func difficultyOptions() []domain.Difficulty {
	return []domain.Difficulty{domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced}
}
