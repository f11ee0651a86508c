package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portfolio/internal/client/client"
	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

func seedInbox(t *testing.T) (*Inbox, *recorder, func(string) int) {
	t.Helper()
	api, srv := newAPI(t)
	srv.SeedMessages(
		models.ContactMessage{ID: "m1", Name: "Ann", Email: "ann@x.io", Message: "hi", Status: models.MessageUnread},
		models.ContactMessage{ID: "m2", Name: "Bob", Email: "bob@x.io", Message: "yo", Status: models.MessageUnread},
		models.ContactMessage{ID: "m3", Name: "Cy", Email: "cy@x.io", Message: "hey", Status: models.MessageRead},
	)
	note := &recorder{}
	in := NewInbox(api.Contact, note)
	require.NoError(t, in.Refresh(context.Background()))
	return in, note, srv.Calls
}

func TestInbox_MarkReadPatchesOneMessage(t *testing.T) {
	in, note, calls := seedInbox(t)
	ctx := context.Background()
	require.Equal(t, 2, in.Unread())

	before, _ := in.View().Find("m2")
	require.NoError(t, in.MarkRead(ctx, "m1"))

	assert.Equal(t, 1, in.Unread())
	m1, _ := in.View().Find("m1")
	assert.Equal(t, models.MessageRead, m1.Status)
	assert.Equal(t, "hi", m1.Message)
	after, _ := in.View().Find("m2")
	assert.Equal(t, before, after)
	assert.Equal(t, 1, calls("GET /api/contact"))

	require.NoError(t, in.MarkReplied(ctx, "m3"))
	m3, _ := in.View().Find("m3")
	assert.Equal(t, models.MessageReplied, m3.Status)
	assert.Equal(t, []string{"Message marked as read", "Message marked as replied"}, note.Successes())
}

func TestInbox_DeleteAndFailures(t *testing.T) {
	api, srv := newAPI(t)
	srv.SeedMessages(models.ContactMessage{ID: "m1", Name: "Ann", Email: "ann@x.io", Message: "hi", Status: models.MessageUnread})
	note := &recorder{}
	in := NewInbox(api.Contact, note)
	ctx := context.Background()
	require.NoError(t, in.Refresh(ctx))

	srv.Fail("PATCH /api/contact/m1/read", http.StatusInternalServerError, 1)
	require.ErrorIs(t, in.MarkRead(ctx, "m1"), client.ErrServer)
	assert.Equal(t, 1, in.Unread())
	require.Len(t, note.Errors(), 1)

	require.NoError(t, in.Delete(ctx, "m1"))
	assert.Zero(t, in.View().Len())
	assert.Zero(t, in.Unread())
}
