package resolver

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyProject is returned when no project ID is given.
	ErrEmptyProject = errors.New("project id is required")
	errNoResponse   = errors.New("no canned response")
)

// ResolutionError wraps any failure to obtain an outcome.
type ResolutionError struct {
	ProjectID string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve outcome for project %s: %v", e.ProjectID, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// wrap returns err as a *ResolutionError unless it already is one.
func wrap(projectID string, err error) error {
	if err == nil {
		return nil
	}
	var re *ResolutionError
	if errors.As(err, &re) {
		return err
	}
	return &ResolutionError{ProjectID: projectID, Err: err}
}
