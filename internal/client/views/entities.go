package views

import (
	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/logging"
)

type (
	ProjectList     = Synchronizer[models.Project, models.CreateProjectRequest, models.UpdateProjectRequest]
	PostList        = Synchronizer[models.Post, models.CreatePostRequest, models.UpdatePostRequest]
	SkillList       = Synchronizer[models.Skill, models.CreateSkillRequest, models.UpdateSkillRequest]
	CertificateList = Synchronizer[models.Certificate, models.CreateCertificateRequest, models.UpdateCertificateRequest]
)

func NewProjectList(src Source[models.Project, models.CreateProjectRequest, models.UpdateProjectRequest], n Notifier, log logging.Logger) *ProjectList {
	return NewSynchronizer(src, "Project", n, log)
}

func NewPostList(src Source[models.Post, models.CreatePostRequest, models.UpdatePostRequest], n Notifier, log logging.Logger) *PostList {
	return NewSynchronizer(src, "Post", n, log)
}

func NewSkillList(src Source[models.Skill, models.CreateSkillRequest, models.UpdateSkillRequest], n Notifier, log logging.Logger) *SkillList {
	return NewSynchronizer(src, "Skill", n, log)
}

func NewCertificateList(src Source[models.Certificate, models.CreateCertificateRequest, models.UpdateCertificateRequest], n Notifier, log logging.Logger) *CertificateList {
	return NewSynchronizer(src, "Certificate", n, log)
}
