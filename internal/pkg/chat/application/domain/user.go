package chat

import "time"

// User is a chat participant. Created once at join time; immutable
// afterwards and never deleted by the relay.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
