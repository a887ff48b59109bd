// Package requestdata carries per-request editor identity through the
// context: which workspace is being edited and which editing session the
// request belongs to. Session ids group version records.
package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

type RequestData struct {
	WorkspaceID uuid.UUID
	SessionID   uuid.UUID
}

func WithRequestData(ctx context.Context, data *RequestData) context.Context {
	return context.WithValue(ctx, contextKey{}, data)
}

func GetRequestData(ctx context.Context) *RequestData {
	data, _ := ctx.Value(contextKey{}).(*RequestData)
	return data
}

// SessionID returns the request's session id, or uuid.Nil outside a
// session-scoped request (background jobs, tests).
func SessionID(ctx context.Context) uuid.UUID {
	if data := GetRequestData(ctx); data != nil {
		return data.SessionID
	}
	return uuid.Nil
}
