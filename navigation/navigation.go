// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package navigation maps a path and the session's role to a view.
//
// Resolve is a pure function of its inputs. Navigate follows redirects until
// it reaches a view.
package navigation

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/agroconnect/agroconnect/models"
	"github.com/agroconnect/agroconnect/session"
)

// Paths
const (
	PathLanding   = "/"
	PathAuth      = "/auth"
	PathProducer  = "/farmer"
	PathPurchaser = "/buyer"
)

// maxHops bounds Navigate; the table needs at most two
const maxHops = 4

var ErrRedirectLoop = errors.New("navigation: too many redirects")

// State is who the client is signed in as
type State int

const (
	Anonymous State = iota
	Farmer
	Buyer
)

func (s State) String() string {
	switch s {
	case Farmer:
		return "farmer"
	case Buyer:
		return "buyer"
	}
	return "anonymous"
}

// StateOf derives the state from a session. A nil session or an unknown
// role is Anonymous.
func StateOf(sess *session.Session) State {
	if sess == nil {
		return Anonymous
	}
	switch sess.User.Role {
	case models.RoleFarmer:
		return Farmer
	case models.RoleBuyer:
		return Buyer
	}
	return Anonymous
}

// View is a screen the client can show
type View int

const (
	Landing View = iota
	Auth
	Producer
	Purchaser
	NotFound
)

func (v View) String() string {
	switch v {
	case Landing:
		return "landing"
	case Auth:
		return "auth"
	case Producer:
		return "producer"
	case Purchaser:
		return "purchaser"
	}
	return "not-found"
}

// Route is the outcome of resolving one path: either a view to show or a
// path to redirect to.
type Route struct {
	View     View
	Redirect string
}

// IsRedirect reports whether the route points elsewhere
func (r Route) IsRedirect() bool {
	return r.Redirect != ""
}

// Resolve applies the routing table:
//
//	path     Anonymous  Farmer          Buyer
//	/        Landing    -> /farmer      -> /buyer
//	/auth    Auth       -> /            -> /
//	/farmer  -> /       Producer        -> /
//	/buyer   -> /       -> /            Purchaser
//
// Any other path is NotFound.
func Resolve(p string, state State) Route {
	switch Clean(p) {
	case PathLanding:
		switch state {
		case Farmer:
			return Route{Redirect: PathProducer}
		case Buyer:
			return Route{Redirect: PathPurchaser}
		}
		return Route{View: Landing}

	case PathAuth:
		if state != Anonymous {
			return Route{Redirect: PathLanding}
		}
		return Route{View: Auth}

	case PathProducer:
		if state != Farmer {
			return Route{Redirect: PathLanding}
		}
		return Route{View: Producer}

	case PathPurchaser:
		if state != Buyer {
			return Route{Redirect: PathLanding}
		}
		return Route{View: Purchaser}
	}

	return Route{View: NotFound}
}

// Navigate resolves p and follows redirects. It returns the view reached and
// the path it was reached at.
func Navigate(p string, state State) (View, string, error) {
	current := Clean(p)
	for hop := 0; hop <= maxHops; hop++ {
		route := Resolve(current, state)
		if !route.IsRedirect() {
			return route.View, current, nil
		}
		current = route.Redirect
	}
	return NotFound, current, fmt.Errorf("%w: started at %s as %s", ErrRedirectLoop, p, state)
}

// Clean normalizes p: a leading slash, no trailing slash, no query
func Clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean("/" + p)
}
