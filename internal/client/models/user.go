package models

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

func (u User) GetID() string { return u.ID }

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if err := required("email", r.Email); err != nil {
		return err
	}
	return required("password", r.Password)
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

func (r RegisterRequest) Validate() error {
	if err := required("email", r.Email); err != nil {
		return err
	}
	if err := required("password", r.Password); err != nil {
		return err
	}
	if r.Role != "" {
		return oneOf("role", r.Role, RoleUser, RoleAdmin)
	}
	return nil
}

// AuthResult is the data part of a login/register response.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
