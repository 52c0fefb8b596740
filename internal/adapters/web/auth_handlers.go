package web

import (
	"net/http"

	authCommands "github.com/andrescamacho/starfleet-go/internal/application/auth/commands"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	u, err := s.currentUser(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "home", &pageData{Title: "Starfleet", User: u})
}

func (s *Server) handleJoinForm(w http.ResponseWriter, r *http.Request) {
	s.authForm(w, r, "join", "Sign up")
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.authForm(w, r, "login", "Log in")
}

// authForm shows a sign-up or log-in form, skipping it when already signed in
func (s *Server) authForm(w http.ResponseWriter, r *http.Request, page, title string) {
	redirectTo := r.URL.Query().Get("redirectTo")

	u, err := s.currentUser(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if u != nil {
		http.Redirect(w, r, safeRedirect(redirectTo), http.StatusFound)
		return
	}

	s.render(w, r, http.StatusOK, page, &pageData{
		Title: title,
		Form:  formData{RedirectTo: redirectTo},
	})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	form := formData{
		Email:      r.PostFormValue("email"),
		RedirectTo: r.PostFormValue("redirectTo"),
	}

	resp, err := common.SendTyped[*authCommands.AuthResponse](r.Context(), s.mediator, &authCommands.RegisterUserCommand{
		Email:    form.Email,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		s.authFailure(w, r, "join", "Sign up", form, err)
		return
	}

	s.setSessionCookie(w, resp.Session)
	http.Redirect(w, r, safeRedirect(form.RedirectTo), http.StatusSeeOther)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := formData{
		Email:      r.PostFormValue("email"),
		RedirectTo: r.PostFormValue("redirectTo"),
	}

	resp, err := common.SendTyped[*authCommands.AuthResponse](r.Context(), s.mediator, &authCommands.LoginCommand{
		Email:    form.Email,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		s.authFailure(w, r, "login", "Log in", form, err)
		return
	}

	s.setSessionCookie(w, resp.Session)
	http.Redirect(w, r, safeRedirect(form.RedirectTo), http.StatusSeeOther)
}

func (s *Server) authFailure(w http.ResponseWriter, r *http.Request, page, title string, form formData, err error) {
	v, ok := shared.AsValidation(err)
	if !ok {
		s.serverError(w, r, err)
		return
	}
	form.Errors = map[string]string{v.Field: v.Message}
	s.render(w, r, http.StatusBadRequest, page, &pageData{Title: title, Form: form})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.opts.CookieName); err == nil && cookie.Value != "" {
		if _, err := s.mediator.Send(r.Context(), &authCommands.LogoutCommand{SessionID: cookie.Value}); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
