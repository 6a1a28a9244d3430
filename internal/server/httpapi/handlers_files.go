package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/eperalta/filedrawer/internal/common"
	"github.com/eperalta/filedrawer/internal/server/models"
)

type uploadPage struct {
	Title string
	User  *models.User
}

type filePage struct {
	Title string
	User  *models.User
	File  *models.File
}

// acceptUpload reads the multipart form field "file" and hands it to the
// file service. The request body is capped before parsing so oversized
// uploads never buffer fully in memory.
func (s *Server) acceptUpload(r *http.Request, user *models.User, folderID *int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, s.cfg.MaxUploadBytes)

	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: request body over %d bytes", common.ErrPayloadTooLarge, s.cfg.MaxUploadBytes)
		}
		return fmt.Errorf("%w: malformed multipart form", common.ErrorValidation)
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: missing file field", common.ErrorValidation)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return fmt.Errorf("reading upload: %w", err)
	}

	_, err = s.files.Upload(r.Context(), user.ID, folderID,
		header.Filename, header.Header.Get("Content-Type"), data)
	return err
}

func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request, user *models.User) {
	page := uploadPage{Title: "Upload", User: user}
	if err := s.renderer.Render(w, http.StatusOK, "upload", page); err != nil {
		s.logger.Error(r.Context(), "rendering upload", "error", err)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, user *models.User) {
	if err := s.acceptUpload(r, user, nil); err != nil {
		s.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	file, err := s.files.Get(r.Context(), user.ID, id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	page := filePage{Title: file.OriginalName, User: user, File: file}
	if err := s.renderer.Render(w, http.StatusOK, "file", page); err != nil {
		s.logger.Error(r.Context(), "rendering file", "error", err)
	}
}

func (s *Server) handleFileDownload(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	url, err := s.files.DownloadURL(r.Context(), user.ID, id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, url, http.StatusSeeOther)
}
