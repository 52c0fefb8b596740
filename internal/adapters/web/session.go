package web

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	authQueries "github.com/andrescamacho/starfleet-go/internal/application/auth/queries"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

const defaultRedirect = "/ships"

// currentUser resolves the session cookie. A missing or invalid session yields nil without error.
func (s *Server) currentUser(r *http.Request) (*user.User, error) {
	cookie, err := r.Cookie(s.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	resp, err := common.SendTyped[*authQueries.ResolveSessionResponse](r.Context(), s.mediator,
		&authQueries.ResolveSessionQuery{SessionID: cookie.Value})
	if err != nil {
		if shared.IsUnauthenticated(err) {
			return nil, nil
		}
		return nil, err
	}
	return resp.User, nil
}

// requireUser resolves the signed-in user before any storage access. When
// there is none it redirects to the login page and returns false.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	u, err := s.currentUser(r)
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	if u == nil {
		redirectToLogin(w, r)
		return nil, false
	}
	return u, true
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login?redirectTo=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, session *user.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeRedirect only accepts local absolute paths, falling back to the ships page
func safeRedirect(to string) string {
	if to == "" || !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.HasPrefix(to, "/\\") {
		return defaultRedirect
	}
	return to
}
