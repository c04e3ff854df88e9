package rbx

import "fmt"

// ReadOnlyPropertyError is returned when a setter is invoked on a property
// that was registered without one. The message names the actual property;
// dispatch code relies on that for actionable errors.
type ReadOnlyPropertyError struct {
	Property string
}

func (e *ReadOnlyPropertyError) Error() string {
	return fmt.Sprintf("Property '%s' is read-only", e.Property)
}

// RegistryError wraps a failure inside the instance registry. Rare with
// the in-memory backend; kept so bulk installers can report per-entry
// failures without aborting.
type RegistryError struct {
	Class  string
	Member string
	Err    error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("registry: %s.%s: %v", e.Class, e.Member, e.Err)
}

func (e *RegistryError) Unwrap() error { return e.Err }
