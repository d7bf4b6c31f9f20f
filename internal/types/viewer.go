package types

import "github.com/google/uuid"

// Viewer is whoever is making the request. The zero value is anonymous.
type Viewer struct {
	ID      uuid.UUID
	IsAdmin bool
}

// Authenticated reports whether the viewer is a logged in user
func (v Viewer) Authenticated() bool {
	return v.ID != uuid.Nil
}
