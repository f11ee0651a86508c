package client

import (
	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

// Client groups the typed clients of every API area over one Transport.
type Client struct {
	Transport *Transport

	Auth         *AuthClient
	Projects     *ProjectClient
	Posts        *PostClient
	Skills       *SkillClient
	Certificates *CertificateClient
	Contact      *ContactClient
	About        *AboutClient
	Profile      *ProfileClient
	Dashboard    *DashboardClient
}

func New(t *Transport) *Client {
	return &Client{
		Transport: t,
		Auth:      &AuthClient{t: t},
		Projects: &ProjectClient{
			NewResource[models.Project, models.CreateProjectRequest, models.UpdateProjectRequest](t, "/api/projects", "projects", "project"),
		},
		Posts: &PostClient{
			Resource: NewResource[models.Post, models.CreatePostRequest, models.UpdatePostRequest](t, "/api/posts", "posts", "post"),
			log:      t.log,
		},
		Skills: &SkillClient{
			NewResource[models.Skill, models.CreateSkillRequest, models.UpdateSkillRequest](t, "/api/skills", "skills", "skill"),
		},
		Certificates: &CertificateClient{
			NewResource[models.Certificate, models.CreateCertificateRequest, models.UpdateCertificateRequest](t, "/api/certificates", "certificates", "certificate"),
		},
		Contact: &ContactClient{
			NewResource[models.ContactMessage, models.CreateContactRequest, models.NoUpdate](t, "/api/contact", "messages", "message"),
		},
		About:     &AboutClient{t: t},
		Profile:   &ProfileClient{t: t},
		Dashboard: &DashboardClient{t: t},
	}
}
