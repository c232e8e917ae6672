// Package common contains shared constants and sentinel errors used across
// daybook components.
package common

// AccessTokenHeaderName is the HTTP header that carries the bearer access token.
const AccessTokenHeaderName = "Authorization"

// DefaultNewsCategory is reported for users who never picked a news category.
const DefaultNewsCategory = "technology"
