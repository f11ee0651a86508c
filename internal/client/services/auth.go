// Package services contains application services for the portfolio console.
// This file defines the authentication service: login, register, logout and
// token introspection on top of the session store and the router.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/portfolio/internal/client/client"
	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/client/nav"
	"github.com/dmitrijs2005/portfolio/internal/client/session"
	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/logging"
)

// AuthService defines authentication operations for the console.
//
// Contract:
//   - Login/Register: authenticate against the API, persist the credential
//     and move the router to the page the user originally asked for.
//   - Logout: drop the credential and go to the login route.
//   - Purge: like Logout, but wipe everything stored for this API origin.
//   - Me: ask the API who the current token belongs to.
//   - WhoAmI: describe the stored credential without calling the API.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (models.User, error)
	Register(ctx context.Context, email string, password []byte, role models.Role) (models.User, error)
	Logout(ctx context.Context) error
	Purge(ctx context.Context) error
	Me(ctx context.Context) (models.User, error)
	WhoAmI() (Identity, error)
}

// Identity is what the console knows locally about the session. ExpiresAt
// is read from the token without verifying it and is for display only.
type Identity struct {
	User      models.User
	Token     string
	ExpiresAt *time.Time
}

type authService struct {
	auth    *client.AuthClient
	session *session.Store
	router  *nav.Router
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client,
// session store and router.
func NewAuthService(auth *client.AuthClient, s *session.Store, r *nav.Router, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{auth: auth, session: s, router: r, log: log}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (models.User, error) {
	defer common.WipeByteArray(password)

	res, err := a.auth.Login(ctx, models.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return models.User{}, fmt.Errorf("login error: %w", err)
	}
	return a.establish(ctx, res)
}

func (a *authService) Register(ctx context.Context, email string, password []byte, role models.Role) (models.User, error) {
	defer common.WipeByteArray(password)

	res, err := a.auth.Register(ctx, models.RegisterRequest{Email: email, Password: string(password), Role: role})
	if err != nil {
		return models.User{}, fmt.Errorf("register error: %w", err)
	}
	return a.establish(ctx, res)
}

func (a *authService) establish(ctx context.Context, res models.AuthResult) (models.User, error) {
	if err := a.session.Save(ctx, res.Token, res.User); err != nil {
		return models.User{}, fmt.Errorf("session saving error: %w", err)
	}
	target := a.router.ReturnTarget()
	a.router.Replace(target)
	a.log.Info(ctx, "signed in", "user", res.User.Email, "token", common.MaskToken(res.Token), "route", target)
	return res.User, nil
}

// Logout always ends on the login route, even if the persisted copy of the
// credential could not be removed.
func (a *authService) Logout(ctx context.Context) error {
	err := a.session.Clear(ctx)
	a.router.RedirectToLogin()
	if err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) Purge(ctx context.Context) error {
	err := a.session.Purge(ctx)
	a.router.RedirectToLogin()
	if err != nil {
		return fmt.Errorf("purge error: %w", err)
	}
	a.log.Info(ctx, "local data removed")
	return nil
}

func (a *authService) Me(ctx context.Context) (models.User, error) {
	return a.auth.Me(ctx)
}

func (a *authService) WhoAmI() (Identity, error) {
	token := a.session.Token()
	user, ok := a.session.User()
	if token == "" || !ok {
		return Identity{}, common.ErrNoCredential
	}

	id := Identity{User: user, Token: common.MaskToken(token)}
	exp, err := TokenExpiry(token)
	if err != nil && !errors.Is(err, common.ErrInvalidToken) {
		return id, err
	}
	id.ExpiresAt = exp
	return id, nil
}

// TokenExpiry reads the exp claim without verifying the signature. It
// returns (nil, nil) for a JWT without exp and ErrInvalidToken for anything
// that is not a JWT.
func TokenExpiry(token string) (*time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if exp == nil {
		return nil, nil
	}
	t := exp.Time
	return &t, nil
}
