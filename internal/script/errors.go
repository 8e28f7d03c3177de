package script

import (
	"errors"
	"fmt"
)

// ErrRunnerClosed is returned when running a script on a closed Runner.
var ErrRunnerClosed = errors.New("script runner is closed")

// ScriptError reports a failure while running a script.
type ScriptError struct {
	// Path names the script, or "<string>" for inline code.
	Path string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Path, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
