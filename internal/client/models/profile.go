package models

type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
}

type SocialLinks struct {
	GitHub    string `json:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type Profile struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Name        string       `json:"name"`
	Avatar      string       `json:"avatar,omitempty"`
	Bio         string       `json:"bio,omitempty"`
	Contact     *Contact     `json:"contact,omitempty"`
	SocialLinks *SocialLinks `json:"social_links,omitempty"`
	CreatedAt   Timestamp    `json:"created_at"`
	UpdatedAt   Timestamp    `json:"updated_at"`
}

func (p Profile) GetID() string { return p.ID }

type UpdateProfileRequest struct {
	Name        *string      `json:"name,omitempty"`
	Avatar      *string      `json:"avatar,omitempty"`
	Bio         *string      `json:"bio,omitempty"`
	Contact     *Contact     `json:"contact,omitempty"`
	SocialLinks *SocialLinks `json:"social_links,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	if r.Name != nil {
		return required("name", *r.Name)
	}
	return nil
}
