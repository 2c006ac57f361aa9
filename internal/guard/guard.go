// Package guard re-checks admin access inside the admin shell, after the
// edge gate. It is driven by identity change events and never keeps a
// positive result across a change of identity.
package guard

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/propertypinoy/website/internal/identity"
)

type Tristate int

const (
	Unknown Tristate = iota
	Yes
	No
)

type Decision int

const (
	// Wait renders the loading shell and none of the protected content.
	Wait Decision = iota
	Allow
	RedirectLogin
	RedirectRoot
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectRoot:
		return "redirect_root"
	default:
		return "wait"
	}
}

const (
	LoginPath = "/admin/login"
	RootPath  = "/"
)

// Roles is the shared role check.
type Roles interface {
	IsAdmin(ctx context.Context, authUserID uuid.UUID) bool
}

// State is a snapshot of the guard flags.
type State struct {
	AuthLoading  bool
	AdminChecked bool
	IsAdmin      Tristate
	Identity     *identity.User
}

type Guard struct {
	roles Roles
	// deny is where a signed-in non-admin is sent. Defaults to the
	// login page.
	deny Decision

	mu    sync.Mutex
	state State
	seq   uint64
}

type Option func(*Guard)

// DenyToRoot sends signed-in non-admins to the site root instead of the
// login page.
func DenyToRoot() Option {
	return func(g *Guard) { g.deny = RedirectRoot }
}

func New(roles Roles, opts ...Option) *Guard {
	g := &Guard{roles: roles, deny: RedirectLogin, state: State{AuthLoading: true}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SessionLoading marks the session as being resolved again and drops any
// previous role result.
func (g *Guard) SessionLoading() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	g.state = State{AuthLoading: true}
}

// IdentityChanged records the resolved identity (nil when signed out) and
// runs the role check for it. A result for an identity that was replaced
// while the check was in flight is discarded.
func (g *Guard) IdentityChanged(ctx context.Context, user *identity.User) {
	g.mu.Lock()
	g.seq++
	seq := g.seq
	if user == nil {
		g.state = State{AdminChecked: true, IsAdmin: No}
		g.mu.Unlock()
		return
	}
	g.state = State{Identity: user}
	g.mu.Unlock()

	admin := g.roles.IsAdmin(ctx, user.ID)

	g.mu.Lock()
	defer g.mu.Unlock()
	if seq != g.seq {
		return
	}
	g.state.AdminChecked = true
	if admin {
		g.state.IsAdmin = Yes
	} else {
		g.state.IsAdmin = No
	}
}

func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Guard) Decision() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.state
	switch {
	case s.AuthLoading || !s.AdminChecked:
		return Wait
	case s.Identity == nil:
		return RedirectLogin
	case s.IsAdmin == Yes:
		return Allow
	default:
		return g.deny
	}
}

// Target returns the redirect path for d, or "" when d is not a redirect.
func Target(d Decision) string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectRoot:
		return RootPath
	default:
		return ""
	}
}
