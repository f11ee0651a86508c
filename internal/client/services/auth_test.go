package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portfolio/internal/client/client"
	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/client/nav"
	"github.com/dmitrijs2005/portfolio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/portfolio/internal/client/session"
	"github.com/dmitrijs2005/portfolio/internal/client/storage"
	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/testutil/fakeapi"
)

// ---- helpers ----

type stack struct {
	srv     *fakeapi.Server
	session *session.Store
	router  *nav.Router
	api     *client.Client
	auth    AuthService
}

func newStack(t *testing.T) *stack {
	t.Helper()
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := fakeapi.New(t)
	store := session.New(metadata.NewSQLiteRepository(db, srv.URL), nil)
	require.NoError(t, store.Init(ctx))

	router := nav.NewRouter(nav.NewGuard(store))
	tr := client.NewTransport(srv.URL,
		client.WithCredentials(store),
		client.WithUnauthorizedHandler(func(context.Context) { router.RedirectToLogin() }),
		client.WithTimeout(5*time.Second),
	)
	api := client.New(tr)

	return &stack{
		srv:     srv,
		session: store,
		router:  router,
		api:     api,
		auth:    NewAuthService(api.Auth, store, router, nil),
	}
}

// ---- tests ----

func TestLogin_SavesSessionAndLogoutClearsIt(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	u, err := s.auth.Login(ctx, "a@b.com", []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "t1", s.session.Token())
	assert.True(t, s.session.IsAuthenticated())
	assert.Equal(t, common.DashboardRoute, s.router.Current().Path)

	require.NoError(t, s.auth.Logout(ctx))
	assert.False(t, s.session.IsAuthenticated())
	assert.Empty(t, s.session.Token())
	assert.Equal(t, common.LoginRoute, s.router.Current().Path)
}

func TestLogin_ReturnsToRequestedPage(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	loc := s.router.Navigate("/admin/posts")
	require.Equal(t, nav.Location{Path: common.LoginRoute, From: "/admin/posts"}, loc)

	_, err := s.auth.Login(ctx, "a@b.com", []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, "/admin/posts", s.router.Current().Path)
}

func TestLogin_WrongPasswordKeepsExistingSession(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.auth.Login(ctx, "a@b.com", []byte("secret"))
	require.NoError(t, err)
	route := s.router.Current()

	_, err = s.auth.Login(ctx, "a@b.com", []byte("nope"))
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.True(t, s.session.IsAuthenticated())
	assert.Equal(t, "t1", s.session.Token())
	assert.Equal(t, route, s.router.Current())
}

func TestLogin_ValidationFailsBeforeSend(t *testing.T) {
	s := newStack(t)

	_, err := s.auth.Login(context.Background(), "", []byte("secret"))
	require.ErrorIs(t, err, client.ErrValidation)
	assert.Zero(t, s.srv.Calls("POST /api/auth/login"))
}

func TestRegister(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.auth.Register(ctx, "a@b.com", []byte("secret"), "")
	require.ErrorIs(t, err, client.ErrConflict)
	assert.False(t, s.session.IsAuthenticated())

	u, err := s.auth.Register(ctx, "new@b.com", []byte("pw"), models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", u.Email)
	assert.True(t, s.session.IsAuthenticated())

	me, err := s.auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)
}

func TestExpiredToken_DemotesAndRedirects(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.auth.Login(ctx, "a@b.com", []byte("secret"))
	require.NoError(t, err)
	s.router.Navigate("/admin/projects")

	var transitions []session.Transition
	s.session.Subscribe(func(tr session.Transition) { transitions = append(transitions, tr) })

	s.srv.Expire("t1")
	_, _, err = s.api.Projects.List(ctx, models.ListParams{})
	require.ErrorIs(t, err, client.ErrUnauthorized)

	assert.False(t, s.session.IsAuthenticated())
	assert.Equal(t, nav.Location{Path: common.LoginRoute, From: "/admin/projects"}, s.router.Current())
	require.Len(t, transitions, 1)
	assert.Equal(t, session.ReasonExpired, transitions[0].Reason)

	// signing in again lands back on the interrupted page
	_, err = s.auth.Login(ctx, "a@b.com", []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, "/admin/projects", s.router.Current().Path)
}

func TestWhoAmI(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.auth.WhoAmI()
	require.ErrorIs(t, err, common.ErrNoCredential)

	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)
	require.NoError(t, s.session.Save(ctx, signed, models.User{ID: "u1", Email: "a@b.com"}))

	id, err := s.auth.WhoAmI()
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", id.User.Email)
	assert.Equal(t, common.MaskToken(signed), id.Token)
	require.NotNil(t, id.ExpiresAt)
	assert.True(t, exp.Equal(*id.ExpiresAt))

	// opaque tokens are fine, they just have no expiry to show
	require.NoError(t, s.session.Save(ctx, "t42", models.User{ID: "u1"}))
	id, err = s.auth.WhoAmI()
	require.NoError(t, err)
	assert.Nil(t, id.ExpiresAt)
}

func TestTokenExpiry(t *testing.T) {
	_, err := TokenExpiry("not-a-jwt")
	require.ErrorIs(t, err, common.ErrInvalidToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("k"))
	require.NoError(t, err)
	got, err := TokenExpiry(noExp)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPurge_ClearsSessionAndGoesToLogin(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.auth.Login(ctx, "a@b.com", []byte("secret"))
	require.NoError(t, err)
	s.router.Navigate("/admin/posts")

	require.NoError(t, s.auth.Purge(ctx))
	assert.False(t, s.session.IsAuthenticated())
	assert.Equal(t, nav.Location{Path: common.LoginRoute, From: "/admin/posts"}, s.router.Current())

	_, err = s.auth.WhoAmI()
	require.ErrorIs(t, err, common.ErrNoCredential)
}
