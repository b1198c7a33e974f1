package utils

import "context"

type CtxKey string

const CtxRequestID CtxKey = "request_id"

func GetString(ctx context.Context, key any) (string, bool) {
	v := ctx.Value(key)
	s, ok := v.(string)
	return s, ok
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxRequestID, id)
}

// RequestID returns the id set by the request logger, or "".
func RequestID(ctx context.Context) string {
	id, _ := GetString(ctx, CtxRequestID)
	return id
}
