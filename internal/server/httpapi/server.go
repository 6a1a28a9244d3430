// Package httpapi exposes the browser-facing HTTP surface: route
// registration, session middleware, and the translation of service
// results into page renders, redirects, and status codes.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/eperalta/filedrawer/internal/logging"
	"github.com/eperalta/filedrawer/internal/server/config"
	"github.com/eperalta/filedrawer/internal/server/services"
)

type Server struct {
	cfg      *config.Config
	logger   logging.Logger
	users    *services.UserService
	folders  *services.FolderService
	files    *services.FileService
	renderer *Renderer
}

func NewServer(cfg *config.Config, logger logging.Logger, users *services.UserService, folders *services.FolderService, files *services.FileService) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:      cfg,
		logger:   logger,
		users:    users,
		folders:  folders,
		files:    files,
		renderer: renderer,
	}, nil
}

// Handler builds the route table. Every authenticated route goes through
// withUser, which resolves the session cookie and redirects to /login on
// failure.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /logout", s.handleLogout)

	mux.HandleFunc("GET /dashboard", s.withUser(s.handleDashboard))

	mux.HandleFunc("GET /folders", s.withUser(s.handleFolders))
	mux.HandleFunc("GET /folders/create", s.withUser(s.handleFolderCreatePage))
	mux.HandleFunc("POST /folders/create", s.withUser(s.handleFolderCreate))
	mux.HandleFunc("GET /folders/{id}", s.withUser(s.handleFolder))
	mux.HandleFunc("GET /folders/{id}/edit", s.withUser(s.handleFolderEditPage))
	mux.HandleFunc("POST /folders/{id}/edit", s.withUser(s.handleFolderEdit))
	mux.HandleFunc("POST /folders/{id}/delete", s.withUser(s.handleFolderDelete))
	mux.HandleFunc("POST /folders/{id}/upload", s.withUser(s.handleFolderUpload))

	mux.HandleFunc("GET /upload", s.withUser(s.handleUploadPage))
	mux.HandleFunc("POST /upload", s.withUser(s.handleUpload))

	mux.HandleFunc("GET /files/{id}", s.withUser(s.handleFile))
	mux.HandleFunc("GET /files/{id}/download", s.withUser(s.handleFileDownload))

	return s.withRequestLog(s.withRecover(mux))
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	httpServer := &http.Server{
		Addr:              s.cfg.EndpointAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
