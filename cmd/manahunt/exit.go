package main

import "fmt"

// Exit codes.
const (
	exitFailure = 1
	exitUsage   = 2
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: exitUsage, Message: "Error: " + fmt.Sprintf(format, args...)}
}
