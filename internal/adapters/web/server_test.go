package web

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starfleet-go/internal/adapters/security"
	"github.com/andrescamacho/starfleet-go/internal/application/setup"
	appstarfield "github.com/andrescamacho/starfleet-go/internal/application/starfield"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
	"github.com/andrescamacho/starfleet-go/test/helpers"
)

type webFixture struct {
	server   *Server
	handler  http.Handler
	ships    *helpers.MockShipRepository
	users    *helpers.MockUserRepository
	sessions *helpers.MockSessionRepository
}

func newWebFixture(t *testing.T, opts Options) *webFixture {
	t.Helper()
	return newWebFixtureWithHasher(t, opts, helpers.PlainPasswordHasher{})
}

func newWebFixtureWithHasher(t *testing.T, opts Options, hasher user.PasswordHasher) *webFixture {
	t.Helper()

	f := &webFixture{
		ships:    helpers.NewMockShipRepository(),
		users:    helpers.NewMockUserRepository(),
		sessions: helpers.NewMockSessionRepository(),
	}

	registry := setup.NewHandlerRegistry(f.ships, f.users, f.sessions, hasher, time.Hour, nil)
	mediator, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	navigator := appstarfield.NewNavigator(appstarfield.Settings{TickInterval: 10 * time.Millisecond}, nil)
	f.server, err = NewServer(mediator, navigator, nil, nil, opts)
	require.NoError(t, err)
	f.handler = f.server.Handler()
	return f
}

// signIn stores a user with a live session and returns the session cookie
func (f *webFixture) signIn(t *testing.T, email string) (*user.User, *http.Cookie) {
	t.Helper()
	u := user.NewUser(email, "plain:password1", nil)
	f.users.AddUser(u)
	session := user.NewSession(u.ID, time.Hour, nil)
	require.NoError(t, f.sessions.Add(context.Background(), session))
	return u, &http.Cookie{Name: defaultCookieName, Value: session.ID}
}

func (f *webFixture) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestShipsRequireSignIn(t *testing.T) {
	f := newWebFixture(t, Options{})

	rec := f.do(httptest.NewRequest(http.MethodGet, "/ships/abc?x=1", nil), nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?redirectTo="+url.QueryEscape("/ships/abc?x=1"), rec.Header().Get("Location"))
	assert.Zero(t, f.ships.FindCalls+f.ships.ListCalls, "storage must not be reached before sign-in")
}

func TestCreateShipWithEmptyNameRendersInlineError(t *testing.T) {
	// Arrange
	f := newWebFixture(t, Options{})
	_, cookie := f.signIn(t, "pilot@example.com")

	// Act
	rec := f.do(postForm("/ships/new", url.Values{"name": {""}}), cookie)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name is required")
	assert.Equal(t, 0, f.ships.AddCalls)
}

func TestCreateShipRedirectsToDetail(t *testing.T) {
	f := newWebFixture(t, Options{})
	_, cookie := f.signIn(t, "pilot@example.com")

	rec := f.do(postForm("/ships/new", url.Values{"name": {"Millennium Falcon"}}), cookie)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/ships/"))
	assert.Equal(t, 1, f.ships.Count())
}

func TestShipDetailOfAnotherUserIsNotFound(t *testing.T) {
	// Arrange
	f := newWebFixture(t, Options{})
	owner, _ := f.signIn(t, "owner@example.com")
	_, intruder := f.signIn(t, "intruder@example.com")

	s, err := ship.NewShip("Slave I", owner.ID, nil)
	require.NoError(t, err)
	f.ships.AddShip(s)

	// Act
	rec := f.do(httptest.NewRequest(http.MethodGet, "/ships/"+s.ID(), nil), intruder)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ship not found")
	assert.NotContains(t, rec.Body.String(), "Slave I")
}

func TestShipDetailRendersInitialFrame(t *testing.T) {
	f := newWebFixture(t, Options{})
	owner, cookie := f.signIn(t, "owner@example.com")
	s, err := ship.NewShip("Slave I", owner.ID, nil)
	require.NoError(t, err)
	f.ships.AddShip(s)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/ships/"+s.ID(), nil), cookie)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Slave I")
	assert.Contains(t, body, `class="player"`)
	assert.Contains(t, body, "/ships/"+s.ID()+"/starfield")
}

func TestDeleteShipOfAnotherUserLeavesItInPlace(t *testing.T) {
	f := newWebFixture(t, Options{})
	owner, _ := f.signIn(t, "owner@example.com")
	_, intruder := f.signIn(t, "intruder@example.com")
	s, err := ship.NewShip("Slave I", owner.ID, nil)
	require.NoError(t, err)
	f.ships.AddShip(s)

	rec := f.do(postForm("/ships/"+s.ID()+"/delete", nil), intruder)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/ships", rec.Header().Get("Location"))
	assert.Equal(t, 1, f.ships.Count())
}

func TestShipsIndexShowsEmptySidebar(t *testing.T) {
	f := newWebFixture(t, Options{})
	_, cookie := f.signIn(t, "pilot@example.com")

	rec := f.do(httptest.NewRequest(http.MethodGet, "/ships", nil), cookie)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No ships yet")
	assert.Contains(t, rec.Body.String(), "No ship selected")
}

func TestLoginRedirectsOnlyToLocalPaths(t *testing.T) {
	tests := []struct {
		name       string
		redirectTo string
		expected   string
	}{
		{name: "local path", redirectTo: "/ships/new", expected: "/ships/new"},
		{name: "empty", redirectTo: "", expected: "/ships"},
		{name: "absolute url", redirectTo: "https://evil.example.com/", expected: "/ships"},
		{name: "protocol relative", redirectTo: "//evil.example.com", expected: "/ships"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWebFixture(t, Options{})
			f.users.AddUser(user.NewUser("pilot@example.com", "plain:password1", nil))

			rec := f.do(postForm("/login", url.Values{
				"email":      {"pilot@example.com"},
				"password":   {"password1"},
				"redirectTo": {tt.redirectTo},
			}), nil)

			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.expected, rec.Header().Get("Location"))

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, defaultCookieName, cookies[0].Name)
			assert.True(t, cookies[0].HttpOnly)
		})
	}
}

func TestLoginWithWrongPasswordRendersError(t *testing.T) {
	f := newWebFixture(t, Options{})
	f.users.AddUser(user.NewUser("pilot@example.com", "plain:password1", nil))

	rec := f.do(postForm("/login", url.Values{
		"email":    {"pilot@example.com"},
		"password": {"wrong-password"},
	}), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
	assert.Empty(t, rec.Result().Cookies())
}

func TestJoinStartsSession(t *testing.T) {
	f := newWebFixture(t, Options{})

	rec := f.do(postForm("/join", url.Values{
		"email":    {"new@example.com"},
		"password": {"password1"},
	}), nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/ships", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, f.sessions.Has(cookies[0].Value))
}

func TestJoinWithOverlongPasswordRendersInlineError(t *testing.T) {
	// Arrange
	f := newWebFixtureWithHasher(t, Options{}, security.NewBcryptHasher(4))

	// Act
	rec := f.do(postForm("/join", url.Values{
		"email":    {"new@example.com"},
		"password": {strings.Repeat("p", 80)},
	}), nil)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password is too long")
	assert.Empty(t, rec.Result().Cookies())
	_, err := f.users.FindByEmail(context.Background(), "new@example.com")
	assert.Error(t, err)
}

func TestLogoutClearsSession(t *testing.T) {
	f := newWebFixture(t, Options{})
	_, cookie := f.signIn(t, "pilot@example.com")

	rec := f.do(postForm("/logout", nil), cookie)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.False(t, f.sessions.Has(cookie.Value))
}

func TestLoginIsRateLimited(t *testing.T) {
	f := newWebFixture(t, Options{RateLimitPerMinute: 1, RateLimitBurst: 2})
	values := url.Values{"email": {"nobody@example.com"}, "password": {"password1"}}

	for i := 0; i < 2; i++ {
		rec := f.do(postForm("/login", values), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}

	rec := f.do(postForm("/login", values), nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestVoyageControlRejectsUnknownVoyage(t *testing.T) {
	f := newWebFixture(t, Options{})
	owner, cookie := f.signIn(t, "owner@example.com")
	s, err := ship.NewShip("Slave I", owner.ID, nil)
	require.NoError(t, err)
	f.ships.AddShip(s)

	for _, action := range []string{"stop", "advance", "warp"} {
		rec := f.do(postForm("/ships/"+s.ID()+"/starfield/missing/"+action, nil), cookie)
		assert.Equal(t, http.StatusNotFound, rec.Code, action)
	}
}

func TestStarfieldStreamNamesVoyageFirst(t *testing.T) {
	// Arrange
	f := newWebFixture(t, Options{})
	owner, cookie := f.signIn(t, "owner@example.com")
	s, err := ship.NewShip("Slave I", owner.ID, nil)
	require.NoError(t, err)
	f.ships.AddShip(s)

	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/ships/"+s.ID()+"/starfield", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)

	// Act
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Assert
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	first, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: voyage\n", first)

	data, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(data, `data: {"id":"`))

	_, _ = reader.ReadString('\n')
	next, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: frame\n", next)
}

func TestHealthz(t *testing.T) {
	f := newWebFixture(t, Options{})

	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}
