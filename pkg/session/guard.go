package session

// Decision is the route guard's verdict for a requested view
type Decision int

const (
	// DecisionPending means the initial session load has not finished;
	// render a neutral placeholder rather than redirecting early
	DecisionPending Decision = iota
	// DecisionAllow renders the requested view
	DecisionAllow
	// DecisionLogin redirects to the login view
	DecisionLogin
	// DecisionHome redirects home: signed in but missing the admin tier
	DecisionHome
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionAllow:
		return "allow"
	case DecisionLogin:
		return "redirect-login"
	case DecisionHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// Guard gates a protected view against the session state
func Guard(loading, authenticated, isAdmin, requireAdmin bool) Decision {
	if loading {
		return DecisionPending
	}
	if !authenticated {
		return DecisionLogin
	}
	if requireAdmin && !isAdmin {
		return DecisionHome
	}
	return DecisionAllow
}

// Guard evaluates the route guard against this store's current state
func (s *Store) Guard(requireAdmin bool) Decision {
	return Guard(s.Loading(), s.Authenticated(), s.IsAdmin(), requireAdmin)
}
