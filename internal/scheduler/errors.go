package scheduler

import (
	"fmt"
	"strings"
)

// UnknownDependencyError is returned in strict mode when a module depends on
// a name that matches no registered module.
type UnknownDependencyError struct {
	Module     string
	Dependency string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("module '%s' depends on unknown module '%s'", e.Module, e.Dependency)
}

// DeadlockError reports modules that could never be scheduled because of a
// circular or unsatisfiable dependency. It is produced by callers that choose
// to fail on a deadlocked plan instead of attempting the stuck modules.
type DeadlockError struct {
	Modules []string
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("dependency deadlock involving %s", strings.Join(e.Modules, ", "))
}
