package domain

import "errors"

var ErrForbidden = errors.New("access forbidden")

// Principal is the identity on whose behalf a request executes.
//
// Two variants exist behind the same type:
//   - an authenticated operator (ID + Role from the JWT), and
//   - the unscoped principal used when authentication is disabled, which is
//     admin-equivalent and sees every sale.
//
// Keeping both behind one type means the row-visibility rule lives in exactly
// one place: OperatorFilter.
type Principal struct {
	ID   string
	Role string
}

// UnscopedPrincipal returns the admin-equivalent principal used when the
// service runs without authentication.
func UnscopedPrincipal() Principal {
	return Principal{Role: RoleAdmin}
}

// IsAdmin reports whether the principal may see sales from all operators.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// OperatorFilter returns the operator id sales must be scoped to, or "" when
// the principal sees everything. Repositories add a WHERE clause only for a
// non-empty filter.
func (p Principal) OperatorFilter() string {
	if p.IsAdmin() {
		return ""
	}
	return p.ID
}
