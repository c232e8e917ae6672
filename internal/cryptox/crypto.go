// Package cryptox implements the salted one-way hashing used to store and
// verify user credentials.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/daybook/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated credential salt.
const SaltSize = 16

// argon2id parameters. Changing them invalidates every stored verifier.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// NewSalt returns SaltSize random bytes.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveVerifier hashes credential with salt using argon2id. The result is
// what gets persisted; the credential itself never is.
func DeriveVerifier(credential, salt []byte) []byte {
	return argon2.IDKey(credential, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// CheckCredential reports whether credential hashes to verifier under salt.
// The comparison runs in constant time.
func CheckCredential(credential, salt, verifier []byte) bool {
	candidate := DeriveVerifier(credential, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
