package validate

import "context"

type contextKey string

// wantWrappedErrorsKey marks whether Validate wraps failures with errors.ErrValidation.
const wantWrappedErrorsKey contextKey = "wantWrappedErrors"

// WithWrappedError returns a context controlling whether Validate wraps the
// validator's error with errors.ErrValidation (the default) or returns it
// unchanged. Unwrapped errors are handy when the caller already knows it is
// validating and wants to compare against the validator's own sentinels.
func WithWrappedError(ctx context.Context, wantWrapped bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, wantWrappedErrorsKey, wantWrapped)
}

// wantWrappedErrors defaults to true when the context does not say otherwise.
func wantWrappedErrors(ctx context.Context) bool {
	if value, ok := ctx.Value(wantWrappedErrorsKey).(bool); ok {
		return value
	}

	return true
}
