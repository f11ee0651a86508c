package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/logging"
)

type ProjectClient struct {
	*Resource[models.Project, models.CreateProjectRequest, models.UpdateProjectRequest]
}

func (c *ProjectClient) ByUser(ctx context.Context, userID string, opts ...CallOption) ([]models.Project, error) {
	return c.byUser(ctx, userID, opts...)
}

type PostClient struct {
	*Resource[models.Post, models.CreatePostRequest, models.UpdatePostRequest]
	log logging.Logger
}

func (c *PostClient) ByUser(ctx context.Context, userID string, opts ...CallOption) ([]models.Post, error) {
	return c.byUser(ctx, userID, opts...)
}

// IncrementViews bumps the view counter of a post. It is public and never
// carries credentials.
func (c *PostClient) IncrementViews(ctx context.Context, id string) (models.Post, error) {
	return call[models.Post](ctx, c.t, http.MethodPost, c.itemPath(id)+"/increment-views", nil, nil, c.itemKey, Anonymous())
}

// IncrementViewsAsync fires IncrementViews in the background. Failures are
// logged at debug level and otherwise ignored.
func (c *PostClient) IncrementViewsAsync(id string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := c.IncrementViews(ctx, id); err != nil {
			c.log.Debug(ctx, "increment views failed", "post", id, "error", err)
		}
	}()
}

type SkillClient struct {
	*Resource[models.Skill, models.CreateSkillRequest, models.UpdateSkillRequest]
}

func (c *SkillClient) ByUser(ctx context.Context, userID string, opts ...CallOption) ([]models.Skill, error) {
	return c.byUser(ctx, userID, opts...)
}

// ByCategory returns skills grouped by category name.
func (c *SkillClient) ByCategory(ctx context.Context, opts ...CallOption) (map[string][]models.Skill, error) {
	return call[map[string][]models.Skill](ctx, c.t, http.MethodGet, c.path+"/category", nil, nil, "skillsByCategory", opts...)
}

type CertificateClient struct {
	*Resource[models.Certificate, models.CreateCertificateRequest, models.UpdateCertificateRequest]
}

func (c *CertificateClient) ByUser(ctx context.Context, userID string, opts ...CallOption) ([]models.Certificate, error) {
	return c.byUser(ctx, userID, opts...)
}

func (c *CertificateClient) ByIssuer(ctx context.Context, opts ...CallOption) (map[string][]models.Certificate, error) {
	return call[map[string][]models.Certificate](ctx, c.t, http.MethodGet, c.path+"/issuers", nil, nil, "certificatesByIssuer", opts...)
}

func (c *CertificateClient) Stats(ctx context.Context, opts ...CallOption) (models.CertificateStats, error) {
	return call[models.CertificateStats](ctx, c.t, http.MethodGet, c.path+"/stats", nil, nil, "stats", opts...)
}

func (c *CertificateClient) Search(ctx context.Context, query string, opts ...CallOption) ([]models.Certificate, error) {
	return c.listAt(ctx, "/search", url.Values{"query": {query}}, opts...)
}

// DateRange lists certificates issued between start and end (YYYY-MM-DD).
func (c *CertificateClient) DateRange(ctx context.Context, start, end string, opts ...CallOption) ([]models.Certificate, error) {
	if err := models.ValidDate("startDate", start); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := models.ValidDate("endDate", end); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return c.listAt(ctx, "/date-range", url.Values{"startDate": {start}, "endDate": {end}}, opts...)
}

type ContactClient struct {
	*Resource[models.ContactMessage, models.CreateContactRequest, models.NoUpdate]
}

// Submit posts the public contact form without credentials.
func (c *ContactClient) Submit(ctx context.Context, req models.CreateContactRequest) (models.ContactMessage, error) {
	if err := validate(req); err != nil {
		return models.ContactMessage{}, err
	}
	return call[models.ContactMessage](ctx, c.t, http.MethodPost, c.path, req, nil, c.itemKey, Anonymous())
}

func (c *ContactClient) MarkRead(ctx context.Context, id string) (models.ContactMessage, error) {
	return call[models.ContactMessage](ctx, c.t, http.MethodPatch, c.itemPath(id)+"/read", nil, nil, c.itemKey)
}

func (c *ContactClient) MarkReplied(ctx context.Context, id string) (models.ContactMessage, error) {
	return call[models.ContactMessage](ctx, c.t, http.MethodPatch, c.itemPath(id)+"/replied", nil, nil, c.itemKey)
}
