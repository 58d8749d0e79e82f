package geobooks

import "net/url"

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// Decision is the route guard's verdict for a protected path.
type Decision int

const (
	// Pending: the session is still resolving. Render a neutral placeholder,
	// never the protected content and never a redirect. There is no timeout:
	// a backend that never resolves leaves the guard pending indefinitely.
	Pending Decision = iota
	// Denied: no session. Redirect to the login screen.
	Denied
	// Granted: render the protected content.
	Granted
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Denied:
		return "denied"
	case Granted:
		return "granted"
	}
	return "unknown"
}

// GuardResult is the guard's output. RedirectTo is only set on Denied and
// carries the originally requested path so the login flow can return the
// visitor afterwards.
type GuardResult struct {
	Decision   Decision
	RedirectTo string
}

// Guard evaluates the session state for a protected path. The three
// outcomes are exhaustive: Pending while loading, then exactly one of
// Denied or Granted.
func Guard(state SessionState, requestedPath string) GuardResult {
	if state.Loading {
		return GuardResult{Decision: Pending}
	}
	if state.User == nil {
		return GuardResult{
			Decision:   Denied,
			RedirectTo: LoginPath + "?from=" + url.QueryEscape(requestedPath),
		}
	}
	return GuardResult{Decision: Granted}
}
