package domain

// Principal is the identity resolved from a validated access token.
// It lives only for the duration of a single request.
type Principal struct {
	Username string
	Role     Role
}

// Anonymous is the sentinel principal for unauthenticated requests.
var Anonymous = Principal{}

// IsAnonymous reports whether no authenticated identity backs p.
func (p Principal) IsAnonymous() bool {
	return p.Username == ""
}

// IsAdmin reports whether p carries the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
