package notification

import "context"

// Dispatcher delivers advisory notifications. Calls are fire-and-continue:
// callers log a returned error and proceed with their primary result.
type Dispatcher interface {
	Notify(ctx context.Context, recipientID, recipientKind, eventType, title, body, relatedID, relatedKind string) error
}
