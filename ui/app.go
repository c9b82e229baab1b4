package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App represents the reconciliation web application
type App struct {
	router    *chi.Mux
	templates *template.Template
	config    Config
}

// Config holds application configuration
type Config struct {
	Port        string
	MaxFileSize int64 // upload cap in bytes
}

// DefaultMaxFileSize caps uploads at 50MB
const DefaultMaxFileSize = 50 * 1024 * 1024

// NewApp creates a new web application
func NewApp(config Config) (*App, error) {
	if config.Port == "" {
		config.Port = "8080"
	}
	if config.MaxFileSize == 0 {
		config.MaxFileSize = DefaultMaxFileSize
	}

	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		templates: templates,
		config:    config,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/transfer", a.handleTransfer)
	a.router.Post("/api/preview", a.handlePreview)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.config.Port
	log.Printf("Starting Concilia server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the handler for tests
func (a *App) Router() http.Handler {
	return a.router
}

// renderTemplate writes an HTML page
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
