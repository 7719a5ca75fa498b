// Package guard protects value types against being used without going
// through their validating constructor.
package guard

import "errors"

var ErrNotConstructed = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into commands, queries and value objects.
// Its zero value reports the owner as not constructed.
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrNotConstructed when nil) for a zero guard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrNotConstructed
	}
	return validationError
}
