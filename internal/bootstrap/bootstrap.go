package bootstrap

import (
	"context"
	"fmt"
)

// Invocation is everything the runtime needs to start a script.
type Invocation struct {
	ScriptPath           string
	CommandLine          string
	Args                 []string
	RunningUnderLauncher bool
	// Env holds extra KEY=VALUE entries layered over the inherited
	// environment.
	Env []string
}

// Runner starts the app runtime for a script and blocks until it finishes.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// ExitError reports that the runtime finished with a non-zero exit status.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("script exited with status %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("script exited with status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
