// Package auth authenticates local accounts.
//
// A visitor who logs in switches from the cookie tier to the user record
// tier of the accessibility settings. Passwords are stored as Argon2id
// hashes.
//
// Example usage:
//
//	lp := auth.NewLocalProvider(db)
//	user, err := lp.Authenticate(username, password)
package auth
