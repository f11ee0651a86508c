package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/common"
)

type memRepo struct {
	mu      sync.Mutex
	data    map[string][]byte
	failSet error
	failDel error
	failClr error
	deletes int
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) SetMany(_ context.Context, values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	for k, v := range values {
		m.data[k] = v
	}
	return nil
}

func (m *memRepo) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if m.failDel != nil {
		return m.failDel
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memRepo) List(_ context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out, nil
}

func (m *memRepo) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failClr != nil {
		return m.failClr
	}
	m.data = map[string][]byte{}
	return nil
}

var admin = models.User{ID: "u1", Email: "a@b.com", Role: models.RoleAdmin}

func TestSaveThenClear(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	s := New(repo, nil)

	require.False(t, s.IsAuthenticated())

	require.NoError(t, s.Save(ctx, "t1", admin))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, Authenticated, s.State())
	assert.Equal(t, "t1", s.Token())
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, []byte("t1"), repo.data[common.AuthTokenKey])
	assert.Contains(t, string(repo.data[common.UserKey]), `"id":"u1"`)

	require.NoError(t, s.Clear(ctx))
	assert.False(t, s.IsAuthenticated())
	_, ok = s.User()
	assert.False(t, ok)
	assert.Empty(t, repo.data)
}

func TestSave_RejectsEmptyToken(t *testing.T) {
	s := New(newMemRepo(), nil)
	require.ErrorIs(t, s.Save(context.Background(), "", admin), common.ErrNoCredential)
	assert.False(t, s.IsAuthenticated())
}

func TestSave_PersistFailureLeavesSessionUntouched(t *testing.T) {
	repo := newMemRepo()
	repo.failSet = errors.New("disk full")
	s := New(repo, nil)

	require.Error(t, s.Save(context.Background(), "t1", admin))
	assert.False(t, s.IsAuthenticated())
}

func TestClear_DropsMemoryEvenIfPersistFails(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	s := New(repo, nil)
	require.NoError(t, s.Save(ctx, "t1", admin))

	repo.failDel = errors.New("locked")
	require.Error(t, s.Clear(ctx))
	assert.False(t, s.IsAuthenticated())
}

func TestPurge_WipesTheWholeScope(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.data["draft"] = []byte("x")
	s := New(repo, nil)
	require.NoError(t, s.Save(ctx, "t1", admin))

	var got []Transition
	s.Subscribe(func(tr Transition) { got = append(got, tr) })

	require.NoError(t, s.Purge(ctx))
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, repo.data)
	assert.Equal(t, []Transition{{From: Authenticated, To: Unauthenticated, Reason: ReasonLogout}}, got)

	require.NoError(t, s.Purge(ctx))
	assert.Len(t, got, 1)
}

func TestPurge_DropsMemoryEvenIfPersistFails(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	s := New(repo, nil)
	require.NoError(t, s.Save(ctx, "t1", admin))

	repo.failClr = errors.New("locked")
	require.ErrorContains(t, s.Purge(ctx), "purge session")
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestInit(t *testing.T) {
	tests := []struct {
		name        string
		data        map[string][]byte
		wantAuth    bool
		wantDeleted bool
	}{
		{"empty", map[string][]byte{}, false, false},
		{"complete", map[string][]byte{common.AuthTokenKey: []byte("t1"), common.UserKey: []byte(`{"id":"u1","email":"a@b.com","role":"admin"}`)}, true, false},
		{"token only", map[string][]byte{common.AuthTokenKey: []byte("t1")}, false, true},
		{"user only", map[string][]byte{common.UserKey: []byte(`{"id":"u1"}`)}, false, true},
		{"corrupt user", map[string][]byte{common.AuthTokenKey: []byte("t1"), common.UserKey: []byte(`{`)}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			repo.data = tt.data
			s := New(repo, nil)

			require.NoError(t, s.Init(context.Background()))
			assert.Equal(t, tt.wantAuth, s.IsAuthenticated())
			assert.Equal(t, tt.wantDeleted, repo.deletes > 0)
			if tt.wantDeleted {
				assert.Empty(t, repo.data)
			}
		})
	}
}

func TestClearIfToken(t *testing.T) {
	ctx := context.Background()

	t.Run("matching token is cleared", func(t *testing.T) {
		s := New(newMemRepo(), nil)
		require.NoError(t, s.Save(ctx, "t1", admin))

		cleared, err := s.ClearIfToken(ctx, "t1")
		require.NoError(t, err)
		assert.True(t, cleared)
		assert.False(t, s.IsAuthenticated())
	})

	t.Run("newer token survives a stale 401", func(t *testing.T) {
		s := New(newMemRepo(), nil)
		require.NoError(t, s.Save(ctx, "t1", admin))
		require.NoError(t, s.Save(ctx, "t2", admin))

		cleared, err := s.ClearIfToken(ctx, "t1")
		require.NoError(t, err)
		assert.False(t, cleared)
		assert.Equal(t, "t2", s.Token())
	})

	t.Run("empty token never clears", func(t *testing.T) {
		s := New(newMemRepo(), nil)
		require.NoError(t, s.Save(ctx, "t1", admin))

		cleared, err := s.ClearIfToken(ctx, "")
		require.NoError(t, err)
		assert.False(t, cleared)
		assert.True(t, s.IsAuthenticated())
	})

	t.Run("concurrent callers clear exactly once", func(t *testing.T) {
		s := New(newMemRepo(), nil)
		require.NoError(t, s.Save(ctx, "t1", admin))

		var wins atomic.Int32
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := s.ClearIfToken(ctx, "t1"); ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())
		assert.False(t, s.IsAuthenticated())
	})
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s := New(newMemRepo(), nil)

	var got []Transition
	cancel := s.Subscribe(func(tr Transition) { got = append(got, tr) })

	require.NoError(t, s.Save(ctx, "t1", admin))
	_, err := s.ClearIfToken(ctx, "t1")
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx)) // already out: no transition

	assert.Equal(t, []Transition{
		{From: Unauthenticated, To: Authenticated, Reason: ReasonLogin},
		{From: Authenticated, To: Unauthenticated, Reason: ReasonExpired},
	}, got)

	cancel()
	require.NoError(t, s.Save(ctx, "t2", admin))
	assert.Len(t, got, 2)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
}
