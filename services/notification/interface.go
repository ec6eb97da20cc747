package notification

import "context"

// NotificationService defines methods for sending FCM pushes to the two
// actor kinds. Push failures never fail the operation that triggered
// them; callers log and move on.
type NotificationService interface {
	SendClientPush(ctx context.Context, userID, title, body string, data map[string]string) error
	SendWalkerPush(ctx context.Context, walkerID, title, body string, data map[string]string) error
}
