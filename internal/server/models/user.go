package models

import "time"

// User is a registered diary owner. Salt and Verifier hold the argon2id
// derivation of the credential; the credential itself is never stored.
type User struct {
	ID           string
	UserName     string
	Salt         []byte
	Verifier     []byte
	NewsCategory string
	CreatedAt    time.Time
}
