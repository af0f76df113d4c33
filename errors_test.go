package hxbs

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pthm/hxbs/lib/encoding"
)

func TestSentinelErrors(t *testing.T) {
	errs := []error{
		ErrNotFound, ErrDecryptFailed, ErrSignatureInvalid, ErrInvalidFormat,
		ErrHydrationFailed, ErrUnknownAction, ErrInvalidDimension,
	}
	for i, a := range errs {
		if !strings.HasPrefix(a.Error(), "hxbs: ") {
			t.Errorf("%q lacks the hxbs prefix", a)
		}
		for _, b := range errs[i+1:] {
			if errors.Is(a, b) || errors.Is(b, a) {
				t.Errorf("%q and %q overlap", a, b)
			}
		}
	}
}

func TestErrorClasses(t *testing.T) {
	type class struct{ notFound, decrypt, config bool }
	tests := []struct {
		name string
		err  error
		want class
	}{
		{"nil", nil, class{}},
		{"plain", errors.New("boom"), class{}},
		{"not found", ErrNotFound, class{notFound: true}},
		{"unknown action", fmt.Errorf("%w %q: %w", ErrUnknownAction, "spin", ErrNotFound), class{notFound: true}},
		{"bad signature", ErrSignatureInvalid, class{decrypt: true}},
		{"wrapped decrypt", fmt.Errorf("props: %w", ErrDecryptFailed), class{decrypt: true}},
		{"bad format", ErrInvalidFormat, class{}},
		{"dimension", invalidDimension("depth"), class{config: true}},
		{"wrapped dimension", fmt.Errorf("panel faq: %w", invalidDimension("")), class{config: true}},
		{"bare dimension sentinel", ErrInvalidDimension, class{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := class{IsNotFound(tt.err), IsDecryptionError(tt.err), IsConfigError(tt.err)}
			if got != tt.want {
				t.Errorf("classes of %v = %+v, want %+v", tt.err, got, tt.want)
			}
		})
	}
}

func TestConfigError(t *testing.T) {
	err := fmt.Errorf("panel: %w", invalidDimension("depth"))

	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Field != "dimension" {
		t.Fatalf("errors.As() = %+v", ce)
	}
	if !errors.Is(err, ErrInvalidDimension) {
		t.Error("does not wrap ErrInvalidDimension")
	}
	if !strings.Contains(err.Error(), `"depth"`) {
		t.Errorf("Error() = %q, want the offending value", err)
	}
}

func TestWrapEncodingError(t *testing.T) {
	other := errors.New("other")
	tests := []struct {
		in      error
		want    error
		decrypt bool
	}{
		{nil, nil, false},
		{encoding.ErrInvalidFormat, ErrInvalidFormat, false},
		{fmt.Errorf("%w: short", encoding.ErrInvalidFormat), ErrInvalidFormat, false},
		{encoding.ErrSignatureInvalid, ErrSignatureInvalid, true},
		{encoding.ErrDecryptFailed, ErrDecryptFailed, true},
		{other, other, false},
	}

	for _, tt := range tests {
		got := wrapEncodingError(tt.in)
		if tt.want == nil {
			if got != nil {
				t.Errorf("wrapEncodingError(nil) = %v", got)
			}
			continue
		}
		if !errors.Is(got, tt.want) || IsDecryptionError(got) != tt.decrypt {
			t.Errorf("wrapEncodingError(%v) = %v", tt.in, got)
		}
	}
}
