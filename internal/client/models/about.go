package models

type About struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Introduction string    `json:"introduction"`
	Highlights   []string  `json:"highlights,omitempty"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

func (a About) GetID() string { return a.ID }

type UpdateAboutRequest struct {
	Introduction string   `json:"introduction"`
	Highlights   []string `json:"highlights,omitempty"`
	Image        string   `json:"image,omitempty"`
}

func (r UpdateAboutRequest) Validate() error {
	return required("introduction", r.Introduction)
}
