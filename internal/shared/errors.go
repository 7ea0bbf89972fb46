package shared

import "fmt"

var (
	// Storage errors
	ErrStoreUnavailable = fmt.Errorf("store unavailable")
	ErrMigrationFailed  = fmt.Errorf("migration failed")
	ErrConstraint       = fmt.Errorf("constraint violation")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
