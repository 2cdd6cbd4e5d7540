package cont

import "context"

type ctxKey string

const confirmKey ctxKey = "confirm"

// PutConfirmed stores the caller's answer to a destructive-action prompt.
func PutConfirmed(ctx context.Context, yes bool) context.Context {
	return context.WithValue(ctx, confirmKey, yes)
}

// Confirmed reports false when no answer was stored.
func Confirmed(ctx context.Context) bool {
	yes, ok := ctx.Value(confirmKey).(bool)
	return ok && yes
}
