// Package web serves the portfolio: pages, the HTMX chat widget backed by
// the remote assistant, the contact form and the admin dashboard.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/neural-glass/internal/assistant"
	"github.com/Zachkp/neural-glass/internal/config"
	"github.com/Zachkp/neural-glass/internal/health"
	"github.com/Zachkp/neural-glass/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Assistant answers chat questions and exposes the backend's chat log.
type Assistant interface {
	Chat(ctx context.Context, query string) (assistant.Reply, error)
	ChatLogs(ctx context.Context, token string) ([]assistant.ChatLog, error)
}

// StatusSource reports the cached assistant health.
type StatusSource interface {
	Status() (health.Status, time.Time)
}

type Server struct {
	cfg       config.Server
	store     *store.Store
	assistant Assistant
	status    StatusSource
	mailer    Mailer

	adminToken  string
	hashingSalt string

	wg sync.WaitGroup
}

// New wires a server. A nil store disables visitor and chat logging.
func New(cfg config.Server, st *store.Store, a Assistant, status StatusSource, mailer Mailer) *Server {
	s := &Server{
		cfg:       cfg,
		store:     st,
		assistant: a,
		status:    status,
		mailer:    mailer,
	}
	s.initAdminToken()
	return s
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.Use(s.visitorTrackingMiddleware())

	r.Static("/images", "./images")
	r.Static("/static", "./static")
	r.Static("/assets", "./assets")

	s.setupPageRoutes(r)
	s.setupChatRoutes(r)
	s.setupContactRoutes(r)
	s.setupAdminRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 page not found")
	})
	return r
}

// background runs fn off the request path; Wait blocks until all such work
// has finished.
func (s *Server) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

func (s *Server) Wait() {
	s.wg.Wait()
}
