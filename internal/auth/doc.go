// Package auth authenticates the back office administrators.
//
// Accounts live in the users table and carry an Argon2id password hash.
// LocalProvider checks credentials, records the last login and manages
// accounts. Route protection is done by the web session middleware, the
// provider only answers "who is this".
//
// Example usage:
//
//	provider := auth.NewLocalProvider(db)
//	user, err := provider.Authenticate(ctx, "admin", "secret")
package auth
