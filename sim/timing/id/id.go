// Package id centralizes the identifier generation used for messages,
// transactions and commands so every subsystem gets globally unique,
// sortable IDs without agreeing on a shared counter.
package id

import "github.com/rs/xid"

// Generate returns a new globally unique identifier.
func Generate() string {
	return xid.New().String()
}
