package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/eperalta/filedrawer/internal/common"
	"github.com/eperalta/filedrawer/internal/server/models"
)

type dashboardPage struct {
	Title      string
	User       *models.User
	Folders    []*models.Folder
	LooseFiles []*models.File
}

type foldersPage struct {
	Title   string
	User    *models.User
	Folders []*models.Folder
}

type folderFormPage struct {
	Title  string
	User   *models.User
	Folder *models.Folder
	Error  string
}

type folderPage struct {
	Title  string
	User   *models.User
	Folder *models.Folder
	Files  []*models.File
}

// pathID parses the {id} segment of the request path. Malformed ids are
// indistinguishable from missing resources.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad id", common.ErrorNotFound)
	}
	return id, nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, user *models.User) {
	folders, err := s.folders.List(r.Context(), user.ID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	loose, err := s.files.List(r.Context(), user.ID, nil)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	page := dashboardPage{Title: "Dashboard", User: user, Folders: folders, LooseFiles: loose}
	if err := s.renderer.Render(w, http.StatusOK, "dashboard", page); err != nil {
		s.logger.Error(r.Context(), "rendering dashboard", "error", err)
	}
}

func (s *Server) handleFolders(w http.ResponseWriter, r *http.Request, user *models.User) {
	folders, err := s.folders.List(r.Context(), user.ID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	page := foldersPage{Title: "Folders", User: user, Folders: folders}
	if err := s.renderer.Render(w, http.StatusOK, "folders", page); err != nil {
		s.logger.Error(r.Context(), "rendering folders", "error", err)
	}
}

func (s *Server) handleFolderCreatePage(w http.ResponseWriter, r *http.Request, user *models.User) {
	page := folderFormPage{Title: "New folder", User: user}
	if err := s.renderer.Render(w, http.StatusOK, "folder_create", page); err != nil {
		s.logger.Error(r.Context(), "rendering folder form", "error", err)
	}
}

func (s *Server) handleFolderCreate(w http.ResponseWriter, r *http.Request, user *models.User) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, common.ErrorValidation)
		return
	}

	if _, err := s.folders.Create(r.Context(), user.ID, r.PostFormValue("name")); err != nil {
		s.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/folders", http.StatusSeeOther)
}

func (s *Server) handleFolder(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	folder, err := s.folders.Get(r.Context(), user.ID, id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	files, err := s.files.List(r.Context(), user.ID, &folder.ID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	page := folderPage{Title: folder.Name, User: user, Folder: folder, Files: files}
	if err := s.renderer.Render(w, http.StatusOK, "folder", page); err != nil {
		s.logger.Error(r.Context(), "rendering folder", "error", err)
	}
}

func (s *Server) handleFolderEditPage(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	folder, err := s.folders.Get(r.Context(), user.ID, id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	page := folderFormPage{Title: "Rename folder", User: user, Folder: folder}
	if err := s.renderer.Render(w, http.StatusOK, "folder_edit", page); err != nil {
		s.logger.Error(r.Context(), "rendering folder form", "error", err)
	}
}

func (s *Server) handleFolderEdit(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, common.ErrorValidation)
		return
	}

	if err := s.folders.Rename(r.Context(), user.ID, id, r.PostFormValue("name")); err != nil {
		s.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/folders/%d", id), http.StatusSeeOther)
}

func (s *Server) handleFolderDelete(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if err := s.folders.Delete(r.Context(), user.ID, id); err != nil {
		s.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/folders", http.StatusSeeOther)
}

func (s *Server) handleFolderUpload(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if err := s.acceptUpload(r, user, &id); err != nil {
		s.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/folders/%d", id), http.StatusSeeOther)
}
