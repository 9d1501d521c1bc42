// Package validate runs self-validation on arbitrary values. A value takes
// part by implementing HasValidate or HasValidateWithContext; sorted lists do
// (their Validate checks the tree invariants), and so does the soak
// configuration.
package validate

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/amp-labs/amp-sortedlist/errors"
	"github.com/amp-labs/amp-sortedlist/logger"
)

// HasValidate is implemented by types that can validate themselves without a context.
type HasValidate interface {
	// Validate returns an error if the value is invalid. It must be idempotent.
	Validate() error
}

// HasValidateWithContext is implemented by types whose validation needs a
// context, for example to honor cancellation during a long check.
type HasValidateWithContext interface {
	Validate(ctx context.Context) error
}

// Validate validates value if it implements HasValidate or
// HasValidateWithContext, and succeeds for anything else, including nil.
// A panicking validator is reported as an error.
//
// Errors are wrapped with errors.ErrValidation unless the context disables
// wrapping with WithWrappedError.
//
// Example:
//
//	list, _ := sortedlist.New(cmp)
//	...
//	if err := validate.Validate(ctx, list); err != nil {
//	    // the tree is corrupted; err wraps errors.ErrValidation and errors.ErrInvariant
//	}
func Validate(ctx context.Context, value any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()

	validatable, err := validateInternal(ctx, value)

	validationsTotal.WithLabelValues(strconv.FormatBool(validatable), strconv.FormatBool(err != nil)).Inc()

	if validatable {
		validationTime.WithLabelValues(fmt.Sprintf("%T", value), strconv.FormatBool(err != nil)).
			Observe(float64(time.Since(start).Microseconds()) / 1000) //nolint:mnd
	}

	if err == nil {
		return nil
	}

	if !wantWrappedErrors(ctx) {
		return err
	}

	return fmt.Errorf("%w: %w", errors.ErrValidation, err)
}

// validateInternal dispatches on the validation interfaces and reports
// whether value implemented one of them.
func validateInternal(ctx context.Context, value any) (validatable bool, err error) {
	if isNilish(value) {
		return false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			validatable = true
			err = fmt.Errorf("panic during validation of %T: %v", value, r) //nolint:err113
		}
	}()

	switch v := value.(type) {
	case HasValidate:
		return true, v.Validate()
	case HasValidateWithContext:
		return true, v.Validate(ctx)
	default:
		logger.Get(ctx).Debug("Validate called on unsupported type", "type", fmt.Sprintf("%T", v))

		return false, nil
	}
}

// isNilish reports whether value is nil or a typed nil of a nilable kind.
func isNilish(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
