// Package domain contains the core data structures and domain logic for the application.
package domain

// Repository is a single public repository as returned by the GitHub
// repositories list endpoint. It is never mutated after decoding.
type Repository struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	FullName    string `json:"full_name" yaml:"full_name"`
	OwnerLogin  string `json:"owner_login" yaml:"owner_login"`
	HTMLURL     string `json:"html_url" yaml:"html_url"`
	Description string `json:"description" yaml:"description"`
	Stars       int    `json:"stargazers_count" yaml:"stargazers_count"`
	Language    string `json:"language" yaml:"language"`
}

// State is the screen state of a search session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateShown
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateShown:
		return "shown"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Session is an immutable snapshot of the screen. A new value is produced
// for every change; callers must not modify Repositories in place.
type Session struct {
	Username     string
	Repositories []Repository
	Loading      bool
	State        State
	// Message is the last user-visible notification, empty when none.
	Message string
}
