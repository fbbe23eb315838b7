package builder

import "fmt"

// ConfigCycleError indicates that a configuration node contains itself,
// directly or transitively, as an argument value. Node trees are acyclic by
// construction when parsed from a document, but programmatically assembled
// trees can violate this.
type ConfigCycleError struct {
	Path      string
	ClassName string
}

func (e *ConfigCycleError) Error() string {
	return fmt.Sprintf("configuration cycle detected at %s: node %q is an argument of itself", e.Path, e.ClassName)
}

// CallableCompilationError indicates an embedded callable literal that failed
// to compile or resolve. It names the offending argument path so the fix is
// actionable without reading the object graph.
type CallableCompilationError struct {
	Path string
	Err  error
}

func (e *CallableCompilationError) Error() string {
	return fmt.Sprintf("failed to materialize callable at %s: %v", e.Path, e.Err)
}

func (e *CallableCompilationError) Unwrap() error { return e.Err }
