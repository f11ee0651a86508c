// Package nav models the console's route history and the guard that keeps
// unauthenticated users out of /admin.
package nav

import (
	"strings"
	"sync"

	"github.com/dmitrijs2005/portfolio/internal/common"
)

// Location is a route. From is set on the login route and holds the path
// the user originally asked for.
type Location struct {
	Path string
	From string
}

// IsProtected reports whether path needs a session: every /admin path
// except the login page.
func IsProtected(path string) bool {
	if path == common.LoginRoute {
		return false
	}
	return path == common.AdminPrefix || strings.HasPrefix(path, common.AdminPrefix+"/")
}

type Authenticator interface {
	IsAuthenticated() bool
}

type Decision struct {
	Allow    bool
	Redirect Location
}

// Guard trusts token presence only; it never checks expiry.
type Guard struct {
	auth Authenticator
}

func NewGuard(auth Authenticator) *Guard {
	return &Guard{auth: auth}
}

func (g *Guard) Check(loc Location) Decision {
	if !IsProtected(loc.Path) || g.auth.IsAuthenticated() {
		return Decision{Allow: true}
	}
	return Decision{Redirect: Location{Path: common.LoginRoute, From: loc.Path}}
}

// Router keeps the navigation history. The zero history starts at "/".
type Router struct {
	guard *Guard

	mu      sync.Mutex
	history []Location
}

func NewRouter(guard *Guard) *Router {
	return &Router{guard: guard, history: []Location{{Path: "/"}}}
}

// Navigate pushes path, or the login redirect if the guard refuses it, and
// returns where the router ended up.
func (r *Router) Navigate(path string) Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc := r.resolve(path)
	r.history = append(r.history, loc)
	return loc
}

// Replace swaps the current entry instead of pushing.
func (r *Router) Replace(path string) Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc := r.resolve(path)
	r.history[len(r.history)-1] = loc
	return loc
}

func (r *Router) resolve(path string) Location {
	loc := Location{Path: path}
	if d := r.guard.Check(loc); !d.Allow {
		return d.Redirect
	}
	return loc
}

func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

// Back pops one entry; the first entry is never removed. Going back into a
// protected page re-runs the guard.
func (r *Router) Back() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) > 1 {
		r.history = r.history[:len(r.history)-1]
	}
	top := r.history[len(r.history)-1]
	loc := r.resolve(top.Path)
	if top.From != "" && loc.Path == top.Path {
		loc.From = top.From
	}
	r.history[len(r.history)-1] = loc
	return loc
}

// RedirectToLogin replaces the current entry with the login route,
// remembering the current path. Repeated calls leave the history unchanged.
func (r *Router) RedirectToLogin() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.history[len(r.history)-1]
	if cur.Path == common.LoginRoute {
		return cur
	}
	loc := Location{Path: common.LoginRoute}
	if IsProtected(cur.Path) {
		loc.From = cur.Path
	}
	r.history[len(r.history)-1] = loc
	return loc
}

// ReturnTarget is where a successful login should go.
func (r *Router) ReturnTarget() string {
	cur := r.Current()
	if cur.Path == common.LoginRoute && cur.From != "" {
		return cur.From
	}
	return common.DashboardRoute
}

// History returns a copy of the entries, oldest first.
func (r *Router) History() []Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Location, len(r.history))
	copy(out, r.history)
	return out
}
