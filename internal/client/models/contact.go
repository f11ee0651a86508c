package models

import "net/mail"

type MessageStatus string

const (
	MessageUnread  MessageStatus = "unread"
	MessageRead    MessageStatus = "read"
	MessageReplied MessageStatus = "replied"
)

type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	Status    MessageStatus `json:"status"`
	CreatedAt Timestamp     `json:"created_at"`
}

func (m ContactMessage) GetID() string { return m.ID }

type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r CreateContactRequest) Validate() error {
	if err := required("name", r.Name); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return invalid("email", "%q is not an email address", r.Email)
	}
	return required("message", r.Message)
}

// NoUpdate is the update shape of resources that cannot be edited.
type NoUpdate struct{}
