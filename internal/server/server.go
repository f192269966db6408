package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"rentadmin/internal/config"
	"rentadmin/internal/events"
	"rentadmin/internal/form"
	"rentadmin/internal/models"
	"rentadmin/internal/repository"
	"rentadmin/internal/store"
	"rentadmin/internal/view"

	"github.com/rs/zerolog"
)

// Server is the admin HTTP surface. Every page render re-fetches from
// the record store and rebuilds its table; no record data is cached
// between requests.
type Server struct {
	cfg    *config.Config
	logger zerolog.Logger

	store    *store.Client
	states   repository.StateRepository
	bus      *events.Bus
	renderer *view.Renderer
	pages    *view.Pages
	form     *form.Controller

	actions map[string]actionFunc
	auth    *Auth
	server  *http.Server
}

func New(
	cfg *config.Config,
	logger *zerolog.Logger,
	client *store.Client,
	states repository.StateRepository,
	bus *events.Bus,
) (*Server, error) {
	pages, err := view.NewPages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger.With().Str("component", "server").Logger(),
		store:    client,
		states:   states,
		bus:      bus,
		renderer: view.NewRenderer(cfg.UI.CurrencyGlyph),
		pages:    pages,
		form:     form.NewController(client, logger),
		auth:     NewAuth(cfg.Server),
	}

	s.actions = map[string]actionFunc{
		models.ActionDelete: s.actionDelete,
		models.ActionEdit:   s.actionEdit,
		models.ActionInfo:   s.actionInfo,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/properties", s.handleProperties)
	mux.HandleFunc("/customers", s.handleCustomers)
	mux.HandleFunc("/billing", s.handleBilling)
	mux.HandleFunc("/action", s.handleAction)
	mux.HandleFunc("/info", s.handleInfo)
	mux.HandleFunc("/info/qr.png", s.handleQR)
	mux.HandleFunc("/export/", s.handleExport)
	mux.HandleFunc("/api/ui-state", s.handleUIState)
	mux.HandleFunc("/static/style.css", s.handleStylesheet)
	mux.HandleFunc("/healthz", s.handleHealth)

	handler := s.requestContext(s.logRequests(s.auth.Wrap(mux)))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return s, nil
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("admin http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// fragments fetches the shared header and footer markup from the
// record store, falling back to the built-in ones when the store does
// not serve them.
func (s *Server) fragments(ctx context.Context) (template.HTML, template.HTML) {
	header := template.HTML(view.DefaultHeader)
	footer := template.HTML(view.DefaultFooter)

	if h, err := s.store.FetchFragment(ctx, "header"); err == nil {
		header = template.HTML(h)
	} else {
		s.logger.Debug().Err(err).Msg("header fragment unavailable, using default")
	}
	if f, err := s.store.FetchFragment(ctx, "footer"); err == nil {
		footer = template.HTML(f)
	} else {
		s.logger.Debug().Err(err).Msg("footer fragment unavailable, using default")
	}
	return header, footer
}

func (s *Server) render(w http.ResponseWriter, name string, page *view.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.pages.Render(w, name, page); err != nil {
		s.logger.Error().Err(err).Str("page", name).Msg("page render failed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
