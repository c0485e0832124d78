// Package access defines the per-request authorization context. The context
// is built once from an already-verified identity and passed explicitly to
// every operation that needs it; nothing in the core reads ambient request
// state.
package access

// Context carries the caller's resolved identity for a single request.
// A nil UserID means the caller is anonymous.
type Context struct {
	UserID *int64
	Admin  bool
}

// Anonymous returns the context of an unauthenticated caller.
func Anonymous() Context {
	return Context{}
}

// ForUser returns the context of an authenticated caller.
func ForUser(id int64, admin bool) Context {
	return Context{UserID: &id, Admin: admin}
}

// Authenticated reports whether the caller has a resolved identity.
func (c Context) Authenticated() bool {
	return c.UserID != nil
}
