package httpapi

import (
	"errors"
	"net/http"

	"github.com/eperalta/filedrawer/internal/common"
	"github.com/eperalta/filedrawer/internal/server/models"
)

// authPage carries no User so the layout renders the logged-out nav.
type authPage struct {
	Title string
	User  *models.User
	Error string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if token, ok := readSessionCookie(r); ok {
		if _, err := s.users.ResolveSession(r.Context(), token); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}
	if err := s.renderer.Render(w, http.StatusOK, "home", authPage{Title: "File Drawer"}); err != nil {
		s.logger.Error(r.Context(), "rendering home", "error", err)
	}
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if err := s.renderer.Render(w, http.StatusOK, "login", authPage{Title: "Log in"}); err != nil {
		s.logger.Error(r.Context(), "rendering login", "error", err)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, common.ErrorValidation)
		return
	}

	session, err := s.users.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			page := authPage{Title: "Log in", Error: "Incorrect username or password."}
			if rerr := s.renderer.Render(w, http.StatusUnauthorized, "login", page); rerr != nil {
				s.logger.Error(r.Context(), "rendering login", "error", rerr)
			}
			return
		}
		s.renderError(w, r, err)
		return
	}

	s.setSessionCookie(w, session.Token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if err := s.renderer.Render(w, http.StatusOK, "register", authPage{Title: "Sign up"}); err != nil {
		s.logger.Error(r.Context(), "rendering register", "error", err)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, common.ErrorValidation)
		return
	}

	_, err := s.users.Register(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		var msg string
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, common.ErrorConflict):
			msg = "That username is already taken."
		case errors.Is(err, common.ErrorValidation):
			msg = "Username and password are required."
		default:
			s.renderError(w, r, err)
			return
		}
		page := authPage{Title: "Sign up", Error: msg}
		if rerr := s.renderer.Render(w, status, "register", page); rerr != nil {
			s.logger.Error(r.Context(), "rendering register", "error", rerr)
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := readSessionCookie(r); ok {
		if err := s.users.Logout(r.Context(), token); err != nil {
			s.logger.Warn(r.Context(), "logout failed", "error", err)
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
