package registry

import "fmt"

// UnknownClassError indicates a class name that does not resolve in the
// registry, typically a typo in a configuration document or a component
// package that was never compiled in.
type UnknownClassError struct {
	Name string
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("unknown class %q: not present in the class registry", e.Name)
}

// DuplicateRegistrationError indicates two different constructors registered
// under the same class name.
type DuplicateRegistrationError struct {
	Name string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("class %q is already registered with a different constructor", e.Name)
}
