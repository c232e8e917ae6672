package dbx

import "github.com/google/uuid"

// UUIDKey canonicalises id for comparison against a UUID primary key. It
// reports false when id can never match such a column.
func UUIDKey(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
