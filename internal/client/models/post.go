package models

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

type Post struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"cover_image,omitempty"`
	PublishedAt *Timestamp `json:"published_at,omitempty"`
	Tags        []string   `json:"tags"`
	Status      PostStatus `json:"status"`
	Views       int        `json:"views"`
	CreatedAt   Timestamp  `json:"created_at"`
	UpdatedAt   Timestamp  `json:"updated_at"`
}

func (p Post) GetID() string { return p.ID }

type CreatePostRequest struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CoverImage string     `json:"cover_image,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	Status     PostStatus `json:"status,omitempty"`
}

func (r CreatePostRequest) Validate() error {
	if err := required("title", r.Title); err != nil {
		return err
	}
	if err := required("content", r.Content); err != nil {
		return err
	}
	if r.Status != "" {
		return oneOf("status", r.Status, PostDraft, PostPublished)
	}
	return nil
}

type UpdatePostRequest struct {
	Title      *string     `json:"title,omitempty"`
	Content    *string     `json:"content,omitempty"`
	CoverImage *string     `json:"cover_image,omitempty"`
	Tags       *[]string   `json:"tags,omitempty"`
	Status     *PostStatus `json:"status,omitempty"`
}

func (r UpdatePostRequest) Validate() error {
	if r.Title != nil {
		if err := required("title", *r.Title); err != nil {
			return err
		}
	}
	if r.Status != nil {
		return oneOf("status", *r.Status, PostDraft, PostPublished)
	}
	return nil
}
