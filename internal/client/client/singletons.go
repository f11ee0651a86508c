package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

// AboutClient manages the single about section of the signed in user.
type AboutClient struct {
	t *Transport
}

const aboutPath = "/api/about"

func (c *AboutClient) Get(ctx context.Context, opts ...CallOption) (models.About, error) {
	return call[models.About](ctx, c.t, http.MethodGet, aboutPath, nil, nil, "about", opts...)
}

func (c *AboutClient) GetByUser(ctx context.Context, userID string, opts ...CallOption) (models.About, error) {
	return call[models.About](ctx, c.t, http.MethodGet, aboutPath+"/"+url.PathEscape(userID), nil, nil, "about", opts...)
}

func (c *AboutClient) Update(ctx context.Context, req models.UpdateAboutRequest) (models.About, error) {
	if err := validate(req); err != nil {
		return models.About{}, err
	}
	return call[models.About](ctx, c.t, http.MethodPut, aboutPath, req, nil, "about")
}

func (c *AboutClient) Delete(ctx context.Context) error {
	_, err := c.t.Send(ctx, http.MethodDelete, aboutPath, nil, nil)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

type ProfileClient struct {
	t *Transport
}

const profilePath = "/api/profiles"

func (c *ProfileClient) Get(ctx context.Context, opts ...CallOption) (models.Profile, error) {
	return call[models.Profile](ctx, c.t, http.MethodGet, profilePath, nil, nil, "profile", opts...)
}

func (c *ProfileClient) GetByUser(ctx context.Context, userID string, opts ...CallOption) (models.Profile, error) {
	return call[models.Profile](ctx, c.t, http.MethodGet, profilePath+"/"+url.PathEscape(userID), nil, nil, "profile", opts...)
}

func (c *ProfileClient) Update(ctx context.Context, req models.UpdateProfileRequest) (models.Profile, error) {
	if err := validate(req); err != nil {
		return models.Profile{}, err
	}
	return call[models.Profile](ctx, c.t, http.MethodPut, profilePath, req, nil, "profile")
}

type DashboardClient struct {
	t *Transport
}

const dashboardPath = "/api/dashboard"

func (c *DashboardClient) Stats(ctx context.Context) (models.DashboardStats, error) {
	return call[models.DashboardStats](ctx, c.t, http.MethodGet, dashboardPath, nil, nil, "stats")
}

func (c *DashboardClient) WeeklyViews(ctx context.Context) ([]models.WeeklyViews, error) {
	return call[[]models.WeeklyViews](ctx, c.t, http.MethodGet, dashboardPath+"/weekly-views", nil, nil, "weeklyViews")
}

func (c *DashboardClient) ProjectsTimeline(ctx context.Context) ([]models.ProjectsTimeline, error) {
	return call[[]models.ProjectsTimeline](ctx, c.t, http.MethodGet, dashboardPath+"/projects-timeline", nil, nil, "projectsTimeline")
}

type AuthClient struct {
	t *Transport
}

// Login and Register are sent without credentials so a wrong password
// never demotes an existing session.
func (c *AuthClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	if err := validate(req); err != nil {
		return models.AuthResult{}, err
	}
	return c.authenticate(ctx, "/api/auth/login", req)
}

func (c *AuthClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	if err := validate(req); err != nil {
		return models.AuthResult{}, err
	}
	return c.authenticate(ctx, "/api/auth/register", req)
}

func (c *AuthClient) authenticate(ctx context.Context, path string, req any) (models.AuthResult, error) {
	env, err := c.t.Send(ctx, http.MethodPost, path, req, nil, Anonymous())
	if err != nil {
		return models.AuthResult{}, err
	}
	var res models.AuthResult
	if err := decodeField(env.Data, "token", &res.Token); err != nil {
		return res, &APIError{Method: http.MethodPost, Path: path, Kind: ErrServer, Cause: err}
	}
	if err := decodeField(env.Data, "user", &res.User); err != nil {
		return res, &APIError{Method: http.MethodPost, Path: path, Kind: ErrServer, Cause: err}
	}
	return res, nil
}

// Me returns the user the current token belongs to.
func (c *AuthClient) Me(ctx context.Context) (models.User, error) {
	return call[models.User](ctx, c.t, http.MethodGet, "/api/auth/me", nil, nil, "user")
}
