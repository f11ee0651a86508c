package fakeapi

import (
	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

func seed[T any](s *Server, c *collection, items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		c.add(toRecord(it))
	}
}

func snapshot[T any](s *Server, c *collection) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fromRecords[T](c.items)
}

// Records without an id get the next one of their collection.
func (s *Server) SeedProjects(items ...models.Project) { seed(s, s.projects, items) }
func (s *Server) SeedPosts(items ...models.Post) { seed(s, s.posts, items) }
func (s *Server) SeedSkills(items ...models.Skill) { seed(s, s.skills, items) }
func (s *Server) SeedCertificates(items ...models.Certificate) { seed(s, s.certificates, items) }
func (s *Server) SeedMessages(items ...models.ContactMessage) { seed(s, s.messages, items) }
func (s *Server) Projects() []models.Project { return snapshot[models.Project](s, s.projects) }
func (s *Server) Posts() []models.Post { return snapshot[models.Post](s, s.posts) }
func (s *Server) Skills() []models.Skill { return snapshot[models.Skill](s, s.skills) }
func (s *Server) Certificates() []models.Certificate { return snapshot[models.Certificate](s, s.certificates) }
func (s *Server) Messages() []models.ContactMessage { return snapshot[models.ContactMessage](s, s.messages) }

func (s *Server) SeedAbout(a models.About) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abouts[a.UserID] = toRecord(a)
}

func (s *Server) SeedProfile(p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = toRecord(p)
}
