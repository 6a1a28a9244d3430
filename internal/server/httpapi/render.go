package httpapi

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/eperalta/filedrawer/internal/bytefmt"
	"github.com/eperalta/filedrawer/internal/common"
	"github.com/eperalta/filedrawer/internal/server/models"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer holds the parsed page templates. Each page is parsed together
// with the shared layout so pages can redefine the content block.
type Renderer struct {
	pages map[string]*template.Template
}

var pageNames = []string{
	"home", "login", "register",
	"dashboard", "folders", "folder_create", "folder", "folder_edit",
	"upload", "file", "error",
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"formatBytes": bytefmt.FormatBytes,
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.gohtml").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.gohtml", fmt.Sprintf("templates/%s.gohtml", name))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return t.Execute(w, data)
}

type errorPage struct {
	Title   string
	User    *models.User
	Message string
}

// renderError maps service errors to status codes and renders the error
// page. Internal failures are logged with the original error; the browser
// only ever sees a generic message.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "Something went wrong."

	switch {
	case errors.Is(err, common.ErrorValidation):
		status = http.StatusBadRequest
		msg = "The request was invalid."
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
		msg = "Not found."
	case errors.Is(err, common.ErrorConflict):
		status = http.StatusBadRequest
		msg = "That name is already taken."
	case errors.Is(err, common.ErrPayloadTooLarge):
		status = http.StatusRequestEntityTooLarge
		msg = "The file is too large."
	case errors.Is(err, common.ErrUploadRejected):
		status = http.StatusBadGateway
		msg = "The storage backend rejected the upload."
	default:
		s.logger.Error(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	}

	if rerr := s.renderer.Render(w, status, "error", errorPage{Title: "Error", Message: msg}); rerr != nil {
		s.logger.Error(r.Context(), "rendering error page", "error", rerr)
	}
}
