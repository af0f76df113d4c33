// Package encoding seals widget props for transport in URLs and hx-vals.
//
// Props are packed with msgpack, then either signed (HMAC-SHA256, readable
// but tamper-proof) or encrypted (AES-256-GCM, opaque). Fields tagged
// `msgpack:"-"` are hydrated server-side and never leave the process.
//
// Signing and encryption use separate keys derived from the one passed to
// NewEncoder. A scope, normally the widget's route prefix, is mixed into
// both, so props sealed for one widget do not open at another.
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
)

// tagLen is the truncated HMAC length in bytes.
const tagLen = 16

var b64 = base64.RawURLEncoding

// Encoder seals and opens props. It is safe for concurrent use.
type Encoder struct {
	signKey []byte
	aead    cipher.AEAD
	scope   string
}

// NewEncoder derives the signing and encryption keys from key. Any length
// works, but the key should carry 32 random bytes.
func NewEncoder(key []byte) (*Encoder, error) {
	block, err := aes.NewCipher(derive(key, "seal"))
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Encoder{signKey: derive(key, "sign"), aead: aead}, nil
}

func derive(key []byte, purpose string) []byte {
	m := hmac.New(sha256.New, key)
	m.Write([]byte("hxbs/" + purpose))
	return m.Sum(nil)
}

// For returns an encoder sharing e's keys whose output only opens under
// the same scope.
func (e *Encoder) For(scope string) *Encoder {
	scoped := *e
	scoped.scope = scope
	return &scoped
}

// Scope returns the scope set by For.
func (e *Encoder) Scope() string { return e.scope }

// Encode packs v and seals it: encrypted when sensitive, signed otherwise.
func (e *Encoder) Encode(v any, sensitive bool) (string, error) {
	packed, err := msgpack.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding: pack: %w", err)
	}
	if sensitive {
		return e.encrypt(packed)
	}
	return b64.EncodeToString(packed) + "." + b64.EncodeToString(e.tag(packed)), nil
}

// Decode opens encoded and unpacks it into v, which must be a pointer.
func (e *Encoder) Decode(encoded string, sensitive bool, v any) error {
	open := e.verify
	if sensitive {
		open = e.decrypt
	}
	packed, err := open(encoded)
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal(packed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

func (e *Encoder) tag(data []byte) []byte {
	m := hmac.New(sha256.New, e.signKey)
	m.Write([]byte(e.scope))
	m.Write([]byte{0})
	m.Write(data)
	return m.Sum(nil)[:tagLen]
}

func (e *Encoder) verify(encoded string) ([]byte, error) {
	body, tag, ok := strings.Cut(encoded, ".")
	if !ok {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidFormat)
	}
	data, err := b64.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	got, err := b64.DecodeString(tag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if !hmac.Equal(got, e.tag(data)) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (e *Encoder) encrypt(data []byte) (string, error) {
	nonce := make([]byte, e.aead.NonceSize(), e.aead.NonceSize()+len(data)+e.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return b64.EncodeToString(e.aead.Seal(nonce, nonce, data, []byte(e.scope))), nil
}

func (e *Encoder) decrypt(encoded string) ([]byte, error) {
	sealed, err := b64.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	n := e.aead.NonceSize()
	if len(sealed) < n+e.aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrInvalidFormat)
	}
	data, err := e.aead.Open(nil, sealed[:n], sealed[n:], []byte(e.scope))
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return data, nil
}
