package volume

import "fmt"

// Actor identifies who issued a control request.
type Actor struct {
	// Hostname is the machine name where the request originated.
	Hostname string `json:"hostname"`
	// Username is the system user who issued the request.
	Username string `json:"username"`
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders the actor as user@host for logs.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return fmt.Sprintf("%s@%s", a.Username, a.Hostname)
}
