package entity

import "time"

// User is keyed by the normalized phone number; it is both the primary key
// and the user-facing id embedded in session tokens.
type User struct {
	Phone       string
	FirebaseUid string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLogin   time.Time
}
