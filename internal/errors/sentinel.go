package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid command input (bad namespace, bad entity shortcut).
	ErrValidation = errors.New("validation error")

	// ErrConfiguration indicates an invalid option value such as an unknown office.
	ErrConfiguration = errors.New("configuration error")

	// ErrSchemaUnsupported indicates entity metadata the generators cannot handle.
	ErrSchemaUnsupported = errors.New("unsupported schema")

	// ErrTargetConflict indicates a destination that already exists or cannot be written.
	ErrTargetConflict = errors.New("target conflict")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a module, entity file, or template was not found.
	ErrNotFound = errors.New("not found")
)
