// Package cmd provides command implementations for the bundlegen CLI.
package cmd

import (
	"errors"

	oerrors "github.com/bundlegen/cli/internal/errors"
)

// Process exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid input or configuration.
	ExitValidationError = 2

	// ExitSchemaUnsupported indicates the entity shape cannot be generated.
	ExitSchemaUnsupported = 3

	// ExitPermissionDenied indicates a target directory is not writable.
	ExitPermissionDenied = 4

	// ExitNotFound indicates a bundle, schema file or config file was not found.
	ExitNotFound = 5

	// ExitTargetConflict indicates a target file or directory already exists.
	ExitTargetConflict = 6
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitSchemaUnsupported:
		return "Schema Unsupported"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	case ExitTargetConflict:
		return "Target Conflict"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrValidation), errors.Is(err, oerrors.ErrConfiguration):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrSchemaUnsupported):
		return ExitSchemaUnsupported
	case errors.Is(err, oerrors.ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, oerrors.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, oerrors.ErrTargetConflict):
		return ExitTargetConflict
	default:
		return ExitGeneralError
	}
}

// exitError wraps err with its exit code, marked as already printed when the
// command reported it.
func exitError(err error, printed bool) error {
	if err == nil {
		return nil
	}
	return &oerrors.ExitError{Err: err, Code: ExitCodeFromError(err), Printed: printed}
}
