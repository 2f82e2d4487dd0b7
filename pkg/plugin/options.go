package plugin

import (
	"github.com/spf13/cast"

	apperrors "github.com/graphport/graphport/pkg/errors"
)

// Options is the free-form option set passed to plugin constructors and to
// [DataSource.Parse]. Keys are plugin-defined; values are arbitrary scalars
// or structured data. A nil Options behaves like an empty one.
type Options map[string]any

// Clone returns a shallow copy of the option set, or nil for a nil set.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Has reports whether the key is present.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// String returns the option coerced to a string, or def if absent.
// Returns an INVALID_OPTION error when the value cannot be coerced.
func (o Options) String(key, def string) (string, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidOption, err, "option %q", key)
	}
	return s, nil
}

// Bool returns the option coerced to a bool, or def if absent.
// Accepts bools and their common string/number spellings.
func (o Options) Bool(key string, def bool) (bool, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrCodeInvalidOption, err, "option %q", key)
	}
	return b, nil
}

// Int returns the option coerced to an int, or def if absent.
func (o Options) Int(key string, def int) (int, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrCodeInvalidOption, err, "option %q", key)
	}
	return n, nil
}
