package usecase

import "github.com/naka-gawa/github-repos/internal/domain"

type actionKind int

const (
	actionPrefill actionKind = iota
	actionRejected
	actionFetchStarted
	actionFetchSucceeded
	actionFetchFailed
)

type action struct {
	kind     actionKind
	username string
	repos    []domain.Repository
	message  string
}

// reduce is the only place a session changes. It never mutates s.
func reduce(s domain.Session, a action) domain.Session {
	switch a.kind {
	case actionPrefill:
		s.Username = a.username
	case actionRejected:
		s.Message = a.message
	case actionFetchStarted:
		s.Username = a.username
		s.Loading = true
		s.State = domain.StateLoading
		s.Message = ""
	case actionFetchSucceeded:
		s.Username = a.username
		s.Repositories = make([]domain.Repository, len(a.repos))
		copy(s.Repositories, a.repos)
		s.Loading = false
		s.State = domain.StateShown
		s.Message = ""
	case actionFetchFailed:
		s.Loading = false
		s.State = domain.StateError
		s.Message = a.message
	}
	return s
}
