// Package uniuri generates random alphanumeric tokens for session ids and
// anti-forgery tokens.
package uniuri
