package ports

import "github.com/aretw0/lotka/pkg/domain"

// Navigator is the set of user-facing controls over one reading session.
// Every call returns the view that is on screen afterwards.
type Navigator interface {
	View() domain.View
	Choose(index int) domain.View
	Goto(sceneID string) domain.View
	Back() domain.View
	OpenRestart() domain.View
	CancelRestart() domain.View
	ConfirmRestart() domain.View
	State() domain.NavigationState
}
