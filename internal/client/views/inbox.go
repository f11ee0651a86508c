package views

import (
	"context"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

type statusMarker interface {
	MarkRead(ctx context.Context, id string) (models.ContactMessage, error)
	MarkReplied(ctx context.Context, id string) (models.ContactMessage, error)
}

type contactSource interface {
	Source[models.ContactMessage, models.CreateContactRequest, models.NoUpdate]
	statusMarker
}

// Inbox is the admin view of contact messages.
type Inbox struct {
	*Synchronizer[models.ContactMessage, models.CreateContactRequest, models.NoUpdate]
	marker statusMarker
}

func NewInbox(src contactSource, notify Notifier) *Inbox {
	return &Inbox{
		Synchronizer: NewSynchronizer[models.ContactMessage, models.CreateContactRequest, models.NoUpdate](src, "Message", notify, nil),
		marker:       src,
	}
}

func (in *Inbox) Unread() int {
	return in.View().Count(func(m models.ContactMessage) bool { return m.Status == models.MessageUnread })
}

func (in *Inbox) MarkRead(ctx context.Context, id string) error {
	return in.mark(ctx, id, in.marker.MarkRead, "Message marked as read")
}

func (in *Inbox) MarkReplied(ctx context.Context, id string) error {
	return in.mark(ctx, id, in.marker.MarkReplied, "Message marked as replied")
}

// mark only touches the status of the one message; the rest of the list
// is not refetched.
func (in *Inbox) mark(ctx context.Context, id string, fn func(context.Context, string) (models.ContactMessage, error), done string) error {
	updated, err := fn(ctx, id)
	if err != nil {
		Failed(in.notify, "Failed to update message", err)
		return err
	}
	in.View().Patch(id, func(m *models.ContactMessage) { m.Status = updated.Status })
	in.notify.Success(done)
	return nil
}
