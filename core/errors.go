package core

import (
	"errors"
	"fmt"
)

var (
	ErrComponentNotFound    = errors.New("component not found")
	ErrComponentNotExternal = errors.New("component is not an external")
	ErrComponentNotModule   = errors.New("component is not a module")
	ErrNilComponent         = errors.New("component cannot be nil")
	ErrAlreadyRegistered    = errors.New("component already registered")
)

// ComponentError wraps a failure with the component and lifecycle phase it
// occurred in.
type ComponentError struct {
	Component string
	Operation string
	Err       error
}

func (e ComponentError) Error() string {
	return fmt.Sprintf("component %q %s failed: %v", e.Component, e.Operation, e.Err)
}

func (e ComponentError) Unwrap() error {
	return e.Err
}
