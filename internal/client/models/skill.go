package models

const (
	MinSkillLevel = 0
	MaxSkillLevel = 100
)

type Skill struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	Icon      string    `json:"icon,omitempty"`
	Category  string    `json:"category"`
	CreatedAt Timestamp `json:"created_at"`
}

func (s Skill) GetID() string { return s.ID }

type CreateSkillRequest struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Icon     string `json:"icon,omitempty"`
	Category string `json:"category"`
}

func (r CreateSkillRequest) Validate() error {
	if err := required("name", r.Name); err != nil {
		return err
	}
	if err := required("category", r.Category); err != nil {
		return err
	}
	return validLevel(r.Level)
}

type UpdateSkillRequest struct {
	Name     *string `json:"name,omitempty"`
	Level    *int    `json:"level,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Category *string `json:"category,omitempty"`
}

func (r UpdateSkillRequest) Validate() error {
	if r.Name != nil {
		if err := required("name", *r.Name); err != nil {
			return err
		}
	}
	if r.Level != nil {
		return validLevel(*r.Level)
	}
	return nil
}

func validLevel(level int) error {
	if level < MinSkillLevel || level > MaxSkillLevel {
		return invalid("level", "%d is outside [%d,%d]", level, MinSkillLevel, MaxSkillLevel)
	}
	return nil
}
