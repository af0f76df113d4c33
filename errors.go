package hxbs

import (
	"errors"
	"fmt"
)

// Sentinel errors for component operations.
var (
	ErrNotFound         = errors.New("hxbs: resource not found")
	ErrDecryptFailed    = errors.New("hxbs: parameter decryption failed")
	ErrSignatureInvalid = errors.New("hxbs: signature verification failed")
	ErrInvalidFormat    = errors.New("hxbs: invalid parameter format")
	ErrHydrationFailed  = errors.New("hxbs: hydration failed")
	ErrUnknownAction    = errors.New("hxbs: unknown action")
	ErrInvalidDimension = errors.New("hxbs: invalid collapse dimension")
)

// ConfigError reports a widget configured with a value it cannot use.
// These are programming errors, meant to surface during development.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s %v", e.Err, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func invalidDimension(d Dimension) error {
	return &ConfigError{
		Field: "dimension",
		Value: fmt.Sprintf("%q (must be %q or %q)", string(d), Width, Height),
		Err:   ErrInvalidDimension,
	}
}

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// IsConfigError checks if err reports a configuration problem.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
