// Package models defines server-side data models persisted in the database.
package models

import "time"

// Entry is one diary record. OwnerID, CreatedAt and Icon are fixed at
// creation; only Title and Content change afterwards.
type Entry struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	Icon      string
	CreatedAt time.Time
}
