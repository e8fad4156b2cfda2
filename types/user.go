package types

import "time"

// User is a participant in the ledger: someone who pays bills or is assigned
// bill items. Phone numbers are unique across users.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserCreate is the payload for registering a new user.
type UserCreate struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UserUpdate is a partial update; only provided, non-empty fields change.
type UserUpdate struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}
