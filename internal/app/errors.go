package app

import (
	"errors"
	"fmt"
)

var (
	// ErrQuit ends a session normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning is returned by a second concurrent Run.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrInitialization matches every SetupError.
	ErrInitialization = errors.New("initialization failed")
)

// SetupError reports a component that could not be created.
type SetupError struct {
	Component string // "backend", "renderer", ...
	Step      string // "select", "init", ...
	Err       error
}

// NewSetupError creates a SetupError.
func NewSetupError(component, step string, err error) *SetupError {
	return &SetupError{Component: component, Step: step, Err: err}
}

func (e *SetupError) Error() string {
	msg := e.Component
	if e.Step != "" {
		msg += ": " + e.Step
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SetupError) Unwrap() error { return e.Err }

// Is makes every setup failure match ErrInitialization.
func (e *SetupError) Is(target error) bool {
	return target == ErrInitialization
}

// SessionError reports a session goroutine that stopped with an error.
type SessionError struct {
	Task string // "keys", "watch"
	Path string // file involved, if any
	Err  error
}

func (e *SessionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Task, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Task, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }
