// Package session holds the process-wide credential: the bearer token and
// the cached user, persisted together in a metadata.Repository.
//
// The session is Authenticated exactly when a token is present. The token
// is never validated locally; a 401 from the API is what demotes it (see
// ClearIfToken).
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/logging"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Reason tells subscribers why the state changed.
type Reason string

const (
	ReasonRestored Reason = "restored"
	ReasonLogin    Reason = "login"
	ReasonLogout   Reason = "logout"
	ReasonExpired  Reason = "expired"
)

type Transition struct {
	From   State
	To     State
	Reason Reason
}

type Store struct {
	repo metadata.Repository
	log  logging.Logger

	mu    sync.Mutex
	token string
	user  *models.User

	subMu  sync.Mutex
	subs   map[int]func(Transition)
	nextID int
}

func New(repo metadata.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{repo: repo, log: log, subs: map[int]func(Transition){}}
}

// Init loads the persisted credential. A token without a readable user (or
// the other way round) is treated as no credential and removed.
func (s *Store) Init(ctx context.Context) error {
	values, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	token := string(values[common.AuthTokenKey])
	rawUser := values[common.UserKey]

	var user models.User
	if token == "" || len(rawUser) == 0 || json.Unmarshal(rawUser, &user) != nil {
		if token != "" || len(rawUser) > 0 {
			s.log.Warn(ctx, "discarding incomplete stored session")
			if err := s.repo.Delete(ctx, common.AuthTokenKey, common.UserKey); err != nil {
				return fmt.Errorf("discard session: %w", err)
			}
		}
		return nil
	}

	s.mu.Lock()
	prev := s.stateLocked()
	s.token, s.user = token, &user
	s.mu.Unlock()

	s.notify(Transition{From: prev, To: Authenticated, Reason: ReasonRestored})
	return nil
}

// Save stores a fresh credential. Both keys are written in one atomic
// batch; on failure the in-memory session is left as it was.
func (s *Store) Save(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return common.ErrNoCredential
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	err = s.repo.SetMany(ctx, map[string][]byte{
		common.AuthTokenKey: []byte(token),
		common.UserKey:      rawUser,
	})
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save session: %w", err)
	}
	prev := s.stateLocked()
	s.token, s.user = token, &user
	s.mu.Unlock()

	s.notify(Transition{From: prev, To: Authenticated, Reason: ReasonLogin})
	return nil
}

// Clear logs out. The in-memory credential is dropped even if removing the
// persisted copy fails.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	prev := s.stateLocked()
	err := s.clearLocked(ctx)
	s.mu.Unlock()

	if prev == Authenticated {
		s.notify(Transition{From: prev, To: Unauthenticated, Reason: ReasonLogout})
	}
	return err
}

// Purge logs out and wipes every key stored for this API origin, not just
// the credential.
func (s *Store) Purge(ctx context.Context) error {
	s.mu.Lock()
	prev := s.stateLocked()
	s.token, s.user = "", nil
	err := s.repo.Clear(ctx)
	s.mu.Unlock()

	if prev == Authenticated {
		s.notify(Transition{From: prev, To: Unauthenticated, Reason: ReasonLogout})
	}
	if err != nil {
		return fmt.Errorf("purge session: %w", err)
	}
	return nil
}

// ClearIfToken clears the credential only if it still holds token and
// reports whether it did. Concurrent callers with the same stale token see
// exactly one true; a newer token saved in between is never cleared.
func (s *Store) ClearIfToken(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	if token == "" || s.token != token {
		s.mu.Unlock()
		return false, nil
	}
	err := s.clearLocked(ctx)
	s.mu.Unlock()

	s.notify(Transition{From: Authenticated, To: Unauthenticated, Reason: ReasonExpired})
	return true, err
}

func (s *Store) clearLocked(ctx context.Context) error {
	s.token, s.user = "", nil
	if err := s.repo.Delete(ctx, common.AuthTokenKey, common.UserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the cached user of the current credential.
func (s *Store) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	return s.State() == Authenticated
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	if s.token != "" {
		return Authenticated
	}
	return Unauthenticated
}

// Subscribe registers fn for state transitions and returns a function that
// removes it. fn runs on the goroutine that caused the transition.
func (s *Store) Subscribe(fn func(Transition)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(t Transition) {
	if t.From == t.To && t.Reason != ReasonLogin {
		return
	}
	s.subMu.Lock()
	fns := make([]func(Transition), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(t)
	}
}
