package models

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

type Project struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Tags        []string      `json:"tags"`
	Thumbnail   string        `json:"thumbnail,omitempty"`
	Link        string        `json:"link,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   Timestamp     `json:"created_at"`
	UpdatedAt   Timestamp     `json:"updated_at"`
}

func (p Project) GetID() string { return p.ID }

type CreateProjectRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Tags        []string      `json:"tags,omitempty"`
	Thumbnail   string        `json:"thumbnail,omitempty"`
	Link        string        `json:"link,omitempty"`
	Status      ProjectStatus `json:"status,omitempty"`
}

func (r CreateProjectRequest) Validate() error {
	if err := required("title", r.Title); err != nil {
		return err
	}
	if err := required("description", r.Description); err != nil {
		return err
	}
	if r.Status != "" {
		return oneOf("status", r.Status, ProjectActive, ProjectCompleted, ProjectArchived)
	}
	return nil
}

// UpdateProjectRequest is partial: nil fields are not sent.
type UpdateProjectRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Tags        *[]string      `json:"tags,omitempty"`
	Thumbnail   *string        `json:"thumbnail,omitempty"`
	Link        *string        `json:"link,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
}

func (r UpdateProjectRequest) Validate() error {
	if r.Title != nil {
		if err := required("title", *r.Title); err != nil {
			return err
		}
	}
	if r.Status != nil {
		return oneOf("status", *r.Status, ProjectActive, ProjectCompleted, ProjectArchived)
	}
	return nil
}
