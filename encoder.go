package hxbs

import (
	"errors"

	"github.com/pthm/hxbs/lib/encoding"
)

// Encoder seals widget props. See package encoding.
type Encoder = encoding.Encoder

// NewEncoder returns an encoder for key. Mount scopes it per widget.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// wrapEncodingError maps encoding package errors onto hxbs sentinels.
func wrapEncodingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrInvalidFormat):
		return ErrInvalidFormat
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	}
	return err
}
